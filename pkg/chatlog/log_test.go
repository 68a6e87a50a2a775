package chatlog

import (
	"slices"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	l := New(100)

	if l.Capacity() != 100 {
		t.Errorf("Expected capacity 100, got %d", l.Capacity())
	}
	if l.Size() != 0 {
		t.Errorf("Expected size 0, got %d", l.Size())
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	l := New(0)

	if l.Capacity() != DefaultCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultCapacity, l.Capacity())
	}
}

func TestAdd_CopiesTokens(t *testing.T) {
	l := New(10)
	tokens := []string{"c", " bob", "hi"}
	l.Add(tokens)
	tokens[2] = "changed"

	got := l.All()
	if len(got) != 1 || got[0][2] != "hi" {
		t.Errorf("Expected stored copy to be unaffected, got %q", got)
	}
}

func TestAdd_WrapAround(t *testing.T) {
	l := New(3)
	for _, msg := range []string{"1", "2", "3", "4", "5"} {
		l.Add([]string{"", msg})
	}

	if l.Size() != 3 {
		t.Errorf("Expected size 3, got %d", l.Size())
	}
	var texts []string
	for _, tokens := range l.All() {
		texts = append(texts, tokens[1])
	}
	if !slices.Equal(texts, []string{"3", "4", "5"}) {
		t.Errorf("Expected oldest lines evicted, got %q", texts)
	}
	if l.Seq() != 5 {
		t.Errorf("Expected seq 5, got %d", l.Seq())
	}
}

func TestLastN(t *testing.T) {
	l := New(10)
	l.Add([]string{"", "a"})
	l.Add([]string{"", "b"})
	l.Add([]string{"", "c"})

	got := l.LastN(2)
	if len(got) != 2 || got[0][1] != "b" || got[1][1] != "c" {
		t.Errorf("Expected [b c], got %q", got)
	}
	if len(l.LastN(0)) != 0 {
		t.Error("Expected no lines for n=0")
	}
	if len(l.LastN(50)) != 3 {
		t.Error("Expected LastN to clamp to size")
	}
}

func TestClear(t *testing.T) {
	l := New(10)
	l.Add([]string{"", "a"})
	before := l.Seq()
	l.Clear()

	if l.Size() != 0 || len(l.All()) != 0 {
		t.Error("Expected log to be empty after Clear")
	}
	if l.Seq() == before {
		t.Error("Expected Clear to change seq")
	}
}

func TestText_SkipsControlLines(t *testing.T) {
	l := New(10)
	l.Add([]string{"users", "2, a, b"})
	l.Add([]string{"c", " a", "hello"})
	l.Add([]string{"title", "Lobby"})
	l.Add([]string{"J", " c"})

	want := "a: hello\nc joined"
	if got := l.Text(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	last, ok := l.LastText()
	if !ok || last != "c joined" {
		t.Errorf("Expected last text 'c joined', got %q", last)
	}
}

func TestConcurrentAccess(t *testing.T) {
	l := New(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Add([]string{"", "line"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = l.Text()
			}
		}()
	}
	wg.Wait()

	if l.Size() != 100 {
		t.Errorf("Expected full log of 100, got %d", l.Size())
	}
}
