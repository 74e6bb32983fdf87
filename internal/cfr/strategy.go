package cfr

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Strategy is one player's inference-time average strategy: a plain map from
// info-set key to a move-code/probability distribution. Loading a persisted
// file populates this directly; strategy_sum stays empty since no further
// training happens from it (spec §6: "On load, the strategy map populates
// directly; strategy_sum is left empty (inference only)").
type Strategy struct {
	Player int
	byKey  map[string]map[string]float64
}

// NewStrategy returns an empty strategy for the given player index.
func NewStrategy(player int) *Strategy {
	return &Strategy{Player: player, byKey: make(map[string]map[string]float64)}
}

// ForKey returns the move-code -> probability distribution for key, and
// whether it exists.
func (s *Strategy) ForKey(key string) (map[string]float64, bool) {
	d, ok := s.byKey[key]
	return d, ok
}

// ExtractStrategy snapshots table's average strategies into a Strategy
// labelled with player. Every info set in the table is copied, whichever
// seat acted at it: neither the keys nor the entries record the acting seat,
// so the result is not filtered by player.
func ExtractStrategy(table *Table, player int) *Strategy {
	s := NewStrategy(player)
	for _, key := range table.Keys() {
		entry, ok := table.Lookup(key)
		if !ok {
			continue
		}
		moves := entry.Moves()
		avg := entry.AverageStrategy()
		if len(moves) != len(avg) {
			continue
		}
		dist := make(map[string]float64, len(moves))
		for i, mv := range moves {
			dist[moveCode(mv)] = avg[i]
		}
		s.byKey[key] = dist
	}
	return s
}

// Save writes the persisted strategy format: a `P<n>` header line, then one
// `<key>={"<code>": <prob>, ...}` line per info set, keys sorted for
// reproducible output (spec §6: "Persisted strategy format").
func (s *Strategy) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P%d\n", s.Player); err != nil {
		return err
	}

	keys := make([]string, 0, len(s.byKey))
	for k := range s.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		dist := s.byKey[key]
		codes := make([]string, 0, len(dist))
		for c := range dist {
			codes = append(codes, c)
		}
		sort.Strings(codes)

		var parts []string
		for _, c := range codes {
			parts = append(parts, fmt.Sprintf("%q: %s", c, strconv.FormatFloat(dist[c], 'g', -1, 64)))
		}
		if _, err := fmt.Fprintf(bw, "%s={%s}\n", key, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadStrategy parses the persisted strategy format produced by Save.
func LoadStrategy(r io.Reader) (*Strategy, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("cfr: empty strategy file")
	}
	header := strings.TrimSpace(scanner.Text())
	if len(header) < 2 || header[0] != 'P' {
		return nil, fmt.Errorf("cfr: malformed strategy header %q", header)
	}
	player, err := strconv.Atoi(header[1:])
	if err != nil {
		return nil, fmt.Errorf("cfr: malformed strategy header %q: %w", header, err)
	}

	s := NewStrategy(player)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("cfr: malformed strategy line %q", line)
		}
		key := line[:eq]
		dist, err := parseDist(line[eq+1:])
		if err != nil {
			return nil, fmt.Errorf("cfr: malformed strategy line %q: %w", line, err)
		}
		s.byKey[key] = dist
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseDist parses `{"c": 0.5, "r2": 0.5}` into a map.
func parseDist(s string) (map[string]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	dist := make(map[string]float64)
	if strings.TrimSpace(s) == "" {
		return dist, nil
	}
	for _, entry := range strings.Split(s, ",") {
		kv := strings.SplitN(entry, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		code := strings.Trim(strings.TrimSpace(kv[0]), `"`)
		prob, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed probability in %q: %w", entry, err)
		}
		dist[code] = prob
	}
	return dist, nil
}
