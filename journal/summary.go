package journal

import (
	"fmt"
	"io"
	"sort"
)

// Summary aggregates basic statistics over a journal.
type Summary struct {
	Total     int
	ByKind    map[string]int
	FirstTick uint64
	LastTick  uint64
}

// Summarize computes a Summary over entries.
func Summarize(entries []*Entry) Summary {
	s := Summary{ByKind: make(map[string]int)}
	for i, e := range entries {
		s.Total++
		s.ByKind[e.Kind]++
		if i == 0 || e.Tick < s.FirstTick {
			s.FirstTick = e.Tick
		}
		if e.Tick > s.LastTick {
			s.LastTick = e.Tick
		}
	}
	return s
}

// Print writes a human-readable summary.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Journal Summary ===")
	fmt.Fprintf(w, "Entries: %d\n", s.Total)
	fmt.Fprintf(w, "Tick range: %d to %d\n", s.FirstTick, s.LastTick)

	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-18s %d\n", k, s.ByKind[k])
	}
}
