package nav

import "sync"

// A History records the locations a Router has committed to
// and the position of the current one among them.
type History interface {
	// Location returns the current entry or an empty string when there is none.
	Location() string

	// At returns the entry n steps away from the current one without moving to it.
	At(n int) (string, bool)

	// Go moves n steps away from the current entry.
	Go(n int) (string, bool)

	// Push adds loc after the current entry, discarding any entries ahead of it.
	Push(loc string)

	// Replace overwrites the current entry with loc.
	Replace(loc string)
}

// MemoryHistory implements History in memory.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	cursor  int
}

// NewMemoryHistory constructs a *MemoryHistory whose current entry is start.
// If start is empty, the *MemoryHistory has no entries.
func NewMemoryHistory(start string) *MemoryHistory {
	h := &MemoryHistory{cursor: -1}
	if start != "" {
		h.entries = []string{start}
		h.cursor = 0
	}

	return h
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		return ""
	}
	return h.entries[h.cursor]
}

func (h *MemoryHistory) At(n int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.at(n)
}

func (h *MemoryHistory) Go(n int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	loc, ok := h.at(n)
	if ok {
		h.cursor += n
	}

	return loc, ok
}

func (h *MemoryHistory) Push(loc string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.cursor+1], loc)
	h.cursor++
}

func (h *MemoryHistory) Replace(loc string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		h.entries = []string{loc}
		h.cursor = 0
		return
	}

	h.entries[h.cursor] = loc
}

// Len reports the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *MemoryHistory) at(n int) (string, bool) {
	i := h.cursor + n
	if h.cursor < 0 || i < 0 || i >= len(h.entries) {
		return "", false
	}

	return h.entries[i], true
}
