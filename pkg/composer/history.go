package composer

import "slices"

const (
	// DefaultHistoryLimit is the size above which old entries are trimmed.
	DefaultHistoryLimit = 100
	// DefaultHistoryTrim is how many of the oldest entries go at once.
	DefaultHistoryTrim = 20
)

// History is the recall buffer of submitted lines. The cursor sits at
// Len() while the user is typing a fresh draft.
type History struct {
	entries []string
	index   int
	limit   int
	trim    int
}

// NewHistory creates an empty history. Non-positive limit or trim fall
// back to the defaults.
func NewHistory(limit, trim int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if trim <= 0 {
		trim = DefaultHistoryTrim
	}
	return &History{limit: limit, trim: trim}
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the recall cursor.
func (h *History) Index() int {
	return h.index
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// store writes draft into the slot under the cursor. At the end of the
// buffer that slot does not exist yet, so the draft is appended.
func (h *History) store(draft string) {
	if draft == "" {
		return
	}
	if h.index == len(h.entries) {
		h.entries = append(h.entries, draft)
		return
	}
	h.entries[h.index] = draft
}

// Up recalls the previous entry. A non-empty draft is kept in the current
// slot first so edits survive further navigation. handled is false when
// the cursor is already at the oldest entry.
func (h *History) Up(draft string) (value string, handled bool) {
	if h.index == 0 {
		return draft, false
	}
	h.store(draft)
	h.index--
	return h.entries[h.index], true
}

// Down recalls the next entry, or clears the field once the cursor passes
// the newest one. handled is false only for an empty draft at the end.
func (h *History) Down(draft string) (value string, handled bool) {
	atEnd := h.index == len(h.entries)
	h.store(draft)
	if atEnd {
		if draft == "" {
			return draft, false
		}
		h.index = len(h.entries)
		return "", true
	}
	h.index++
	if h.index == len(h.entries) {
		return "", true
	}
	return h.entries[h.index], true
}

// Push records a submitted line. An earlier copy of the same line is
// dropped, and once the buffer is over the limit the oldest entries are
// trimmed in one batch. The cursor moves to a fresh draft.
func (h *History) Push(line string) {
	if i := lastIndex(h.entries, line); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	if len(h.entries) > h.limit {
		h.entries = slices.Delete(h.entries, 0, min(h.trim, len(h.entries)))
	}
	h.entries = append(h.entries, line)
	h.index = len(h.entries)
}

func lastIndex(entries []string, line string) int {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i] == line {
			return i
		}
	}
	return -1
}
