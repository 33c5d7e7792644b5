package nav

import "sync"

// A Document is the host environment's displayed document.
type Document interface {
	Title() string
	SetTitle(title string)
}

// MemoryDocument implements Document in memory.
type MemoryDocument struct {
	mu    sync.RWMutex
	title string
}

// NewMemoryDocument constructs a *MemoryDocument titled title.
func NewMemoryDocument(title string) *MemoryDocument {
	return &MemoryDocument{title: title}
}

func (d *MemoryDocument) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

func (d *MemoryDocument) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}
