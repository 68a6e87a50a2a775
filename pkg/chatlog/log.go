// Package chatlog is the display sink for a room: a bounded ring of parsed
// protocol lines in arrival order, plus plain-text rendering of them.
package chatlog

import (
	"strings"
	"sync"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1000

// Log is a thread-safe ring buffer of tokenized lines
type Log struct {
	mu       sync.RWMutex
	data     [][]string
	capacity int // Maximum number of lines
	size     int // Current number of lines
	head     int // Write position
	seq      uint64
}

// New creates a log holding up to capacity lines
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Log{
		data:     make([][]string, capacity),
		capacity: capacity,
	}
}

// Add appends a tokenized line, evicting the oldest when full
func (l *Log) Add(tokens []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Copy to avoid external modifications
	l.data[l.head] = append([]string(nil), tokens...)
	l.head = (l.head + 1) % l.capacity
	l.seq++

	if l.size < l.capacity {
		l.size++
	}
}

// LastN returns the last n lines, oldest first
func (l *Log) LastN(n int) [][]string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return [][]string{}
	}
	if n > l.size {
		n = l.size
	}

	result := make([][]string, n)
	start := (l.head - n + l.capacity) % l.capacity
	for i := 0; i < n; i++ {
		pos := (start + i) % l.capacity
		result[i] = append([]string(nil), l.data[pos]...)
	}
	return result
}

// All returns every stored line, oldest first
func (l *Log) All() [][]string {
	return l.LastN(l.Size())
}

// Size returns the current number of lines
func (l *Log) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Capacity returns the maximum number of lines
func (l *Log) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capacity
}

// Seq changes on every Add and Clear. Renderers compare it to skip redraws.
func (l *Log) Seq() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}

// Clear empties the log
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data = make([][]string, l.capacity)
	l.size = 0
	l.head = 0
	l.seq++
}

// Text renders every visible line, separated by newlines
func (l *Log) Text() string {
	lines := l.All()
	rendered := make([]string, 0, len(lines))
	for _, tokens := range lines {
		if text, ok := Render(tokens); ok {
			rendered = append(rendered, text)
		}
	}
	return strings.Join(rendered, "\n")
}

// LastText returns the most recent visible line
func (l *Log) LastText() (string, bool) {
	lines := l.All()
	for i := len(lines) - 1; i >= 0; i-- {
		if text, ok := Render(lines[i]); ok {
			return text, true
		}
	}
	return "", false
}
