// Package roster tracks the participants of a room: the userid → display
// name mapping plus the server-declared participant count.
package roster

import "pschat/pkg/userid"

// Roster maps userids to display names. Count is authoritative for the
// number of participants and may exceed len(users) when the server only
// sent part of the list.
type Roster struct {
	users map[string]string
	count int
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{users: make(map[string]string)}
}

// Count returns the declared participant count.
func (r *Roster) Count() int {
	return r.count
}

// Len returns the number of known entries.
func (r *Roster) Len() int {
	return len(r.users)
}

// Name returns the display name stored for id.
func (r *Roster) Name(id string) (string, bool) {
	name, ok := r.users[id]
	return name, ok
}

// Has reports whether id is present.
func (r *Roster) Has(id string) bool {
	_, ok := r.users[id]
	return ok
}

// Set replaces the whole roster with a snapshot.
func (r *Roster) Set(count int, names []string) {
	r.count = count
	r.users = make(map[string]string, len(names))
	for _, name := range names {
		r.users[userid.ToID(name)] = name
	}
}

// Add inserts or updates name. The count only grows when the userid is new.
func (r *Roster) Add(name string) {
	id := userid.ToID(name)
	if _, ok := r.users[id]; !ok {
		r.count++
	}
	r.users[id] = name
}

// Remove deletes name. The count only shrinks when the userid was present.
func (r *Roster) Remove(name string) {
	id := userid.ToID(name)
	if _, ok := r.users[id]; ok {
		r.count--
		delete(r.users, id)
	}
}

// Rename removes oldName and adds newName. The entry is replaced rather
// than mutated because the key is derived from the name.
func (r *Roster) Rename(newName, oldName string) {
	r.Remove(oldName)
	r.Add(newName)
}

// Entry is one roster row.
type Entry struct {
	ID   string
	Name string
}

// Entries returns the roster rows in unspecified order.
func (r *Roster) Entries() []Entry {
	entries := make([]Entry, 0, len(r.users))
	for id, name := range r.users {
		entries = append(entries, Entry{ID: id, Name: name})
	}
	return entries
}
