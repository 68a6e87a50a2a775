package composer

// ToggleFormat wraps the selection [start, end) of value in a doubled fc
// marker, or unwraps it when it is already wrapped. Offsets are rune
// offsets. An empty selection becomes an empty span with the caret inside.
// Applying it twice to the same selection restores the input.
func ToggleFormat(value string, start, end int, fc rune) (string, int, int) {
	text := []rune(value)
	start = clamp(start, 0, len(text))
	end = clamp(end, start, len(text))

	// Keep the boundaries out of an adjacent marker.
	if at(text, start) == fc && at(text, start-1) == fc && at(text, start-2) != fc {
		start++
	}
	if at(text, end) == fc && at(text, end-1) == fc && at(text, end-2) != fc {
		end--
	}
	if end < start {
		end = start
	}

	wrap := []rune{fc, fc}
	out := make([]rune, 0, len(text)+4)
	out = append(out, text[:start]...)
	out = append(out, wrap...)
	out = append(out, text[start:end]...)
	out = append(out, wrap...)
	out = append(out, text[end:]...)
	text = out
	start += 2
	end += 2

	nesting := string([]rune{fc, fc, fc, fc})
	if window(text, start-4, 4) == nesting {
		text = cut(text, start-4, start)
		start -= 4
		end -= 4
	} else if start != end && window(text, start-2, 4) == nesting {
		text = cut(text, start-2, start+2)
		start -= 2
		end -= 4
	}
	if window(text, end, 4) == nesting {
		text = cut(text, end, end+4)
	} else if start != end && window(text, end-2, 4) == nesting {
		text = cut(text, end-2, end+2)
		end -= 2
	}

	return string(text), start, end
}

// at returns the rune at i, or -1 outside the text.
func at(text []rune, i int) rune {
	if i < 0 || i >= len(text) {
		return -1
	}
	return text[i]
}

// window returns up to n runes starting at i. Windows starting before the
// text are empty.
func window(text []rune, i, n int) string {
	if i < 0 || i >= len(text) {
		return ""
	}
	return string(text[i:min(i+n, len(text))])
}

func cut(text []rune, from, to int) []rune {
	to = min(to, len(text))
	return append(text[:from:from], text[to:]...)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
