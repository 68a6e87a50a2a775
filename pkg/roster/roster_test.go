package roster

import "testing"

func TestSet(t *testing.T) {
	r := New()
	r.Set(5, []string{"@Alice", " bob"})

	if r.Count() != 5 {
		t.Errorf("Expected count 5, got %d", r.Count())
	}
	if r.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", r.Len())
	}
	if name, ok := r.Name("alice"); !ok || name != "@Alice" {
		t.Errorf("Expected alice -> @Alice, got %q (%v)", name, ok)
	}
}

func TestSet_ReplacesPreviousEntries(t *testing.T) {
	r := New()
	r.Set(2, []string{" a", " b"})
	r.Set(1, []string{" c"})

	if r.Has("a") || r.Has("b") {
		t.Error("Expected old entries to be dropped")
	}
	if !r.Has("c") || r.Count() != 1 {
		t.Errorf("Expected only c with count 1, got count %d", r.Count())
	}
}

func TestAdd(t *testing.T) {
	r := New()
	r.Set(1, []string{" a"})

	r.Add(" b")
	if r.Count() != 2 {
		t.Errorf("Expected count 2 after new user, got %d", r.Count())
	}

	r.Add("+B")
	if r.Count() != 2 {
		t.Errorf("Expected count unchanged for known user, got %d", r.Count())
	}
	if name, _ := r.Name("b"); name != "+B" {
		t.Errorf("Expected display name to update to +B, got %q", name)
	}
}

func TestRemove(t *testing.T) {
	r := New()
	r.Set(2, []string{" a", " b"})

	r.Remove(" b")
	if r.Count() != 1 || r.Has("b") {
		t.Errorf("Expected b removed with count 1, got count %d", r.Count())
	}

	r.Remove(" ghost")
	if r.Count() != 1 {
		t.Errorf("Expected count unchanged for unknown user, got %d", r.Count())
	}
}

func TestRename(t *testing.T) {
	r := New()
	r.Set(2, []string{" a", " b"})

	r.Rename(" c", " b")
	if r.Count() != 2 {
		t.Errorf("Expected count 2 after rename, got %d", r.Count())
	}
	if r.Has("b") || !r.Has("c") {
		t.Error("Expected b replaced by c")
	}

	// Case-only change keeps the same userid.
	r.Rename(" C", " c")
	if r.Count() != 2 {
		t.Errorf("Expected count 2 after case-only rename, got %d", r.Count())
	}
	if name, _ := r.Name("c"); name != " C" {
		t.Errorf("Expected display name ' C', got %q", name)
	}
}

func TestRename_UnknownOldName(t *testing.T) {
	r := New()
	r.Set(1, []string{" a"})

	r.Rename(" d", " ghost")
	if r.Count() != 2 {
		t.Errorf("Expected count 2 (add only), got %d", r.Count())
	}
}

func TestCountMatchesEntriesFromSnapshot(t *testing.T) {
	r := New()
	r.Set(3, []string{" a", " b", " c"})
	r.Add(" d")
	r.Remove(" a")
	r.Rename(" e", " b")
	r.Add(" f")
	r.Remove(" c")

	if r.Count() != r.Len() {
		t.Errorf("Expected count %d to equal entries %d", r.Count(), r.Len())
	}
}
