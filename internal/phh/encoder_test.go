package phh_test

import (
	"bytes"
	"testing"

	"github.com/lox/holdem-engine/internal/phh"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCard(t *testing.T) {
	tests := []struct{ in, want string }{
		{"10h", "Th"},
		{"10H", "Th"},
		{"ah", "Ah"},
		{"As", "As"},
		{"??", "??"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, phh.NormalizeCard(tt.in))
	}
}

func TestEncodeHandHistory(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:           phh.VariantNoLimit,
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		Seats:             []int{1, 2, 3},
		HandID:            "hand-00042",
		Actions: []string{
			"d dh p1 AhKh",
			"d dh p2 7c2d",
			"d dh p3 QsJs",
			"p1 cbr 6",
			"p2 f",
			"p3 cc",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	got := buf.String()
	require.Contains(t, got, "variant = \"NT\"\n")
	require.Contains(t, got, "min_bet = 2\n")
	require.Contains(t, got, "hand = \"hand-00042\"\n")
	require.Contains(t, got, "d dh p1 AhKh")
}

func TestEncodeNilHandReturnsError(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, phh.Encode(&buf, nil))
}
