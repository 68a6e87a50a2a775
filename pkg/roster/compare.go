package roster

import (
	"slices"
	"unicode/utf8"
)

const (
	// unrankedOrder sorts names without a known symbol between drivers
	// and bots.
	unrankedOrder = 10006.5

	founderID       = "zarel"
	founderRank     = 10003
	founderOverride = 10000.5
)

// Symbol returns the rank symbol of a display name (its first character).
func Symbol(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

func rankOf(ranks Ranker, e Entry) float64 {
	rank := float64(unrankedOrder)
	if ranks != nil {
		if group, ok := ranks.Group(Symbol(e.Name)); ok {
			rank = group.Order
		}
	}
	if e.ID == founderID && rank == founderRank {
		rank = founderOverride
	}
	return rank
}

// Compare orders two roster entries for display: by rank, then by userid.
func Compare(ranks Ranker, a, b Entry) int {
	if a.ID == b.ID {
		return 0
	}
	rankA, rankB := rankOf(ranks, a), rankOf(ranks, b)
	if rankA != rankB {
		if rankA < rankB {
			return -1
		}
		return 1
	}
	if a.ID > b.ID {
		return 1
	}
	return -1
}

// Sorted returns the roster rows in display order.
func (r *Roster) Sorted(ranks Ranker) []Entry {
	entries := r.Entries()
	slices.SortFunc(entries, func(a, b Entry) int {
		return Compare(ranks, a, b)
	})
	return entries
}
