// Package archive accumulates named artifacts in memory and packs them into
// a single zip.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	name string
	blob []byte
}

// Archive is an in-memory bundle. Entries keep insertion order.
type Archive struct {
	mu       sync.Mutex
	entries  []entry
	names    map[string]struct{}
	modified time.Time
	closed   bool
}

func New() *Archive {
	return &Archive{names: make(map[string]struct{}), modified: time.Now()}
}

// Add stores blob under name. Names must be unique within the archive.
func (a *Archive) Add(name string, blob []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("archive already finalized")
	}

	if name == "" {
		return fmt.Errorf("empty entry name")
	}

	if _, dup := a.names[name]; dup {
		return fmt.Errorf("duplicate entry %q", name)
	}

	a.names[name] = struct{}{}
	a.entries = append(a.entries, entry{name: name, blob: bytes.Clone(blob)})

	return nil
}

// Has reports whether name is already taken.
func (a *Archive) Has(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.names[name]

	return ok
}

func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.entries)
}

func (a *Archive) Names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.name
	}

	return out
}

// Finalize packs every entry into a deflated zip. The archive cannot be
// added to afterwards.
func (a *Archive) Finalize() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, fmt.Errorf("archive already finalized")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range a.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: a.modified,
		})
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", e.name, err)
		}

		if _, err := w.Write(e.blob); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip: %w", err)
	}

	a.closed = true
	a.entries = nil

	return buf.Bytes(), nil
}

// Discard drops all entries without producing output.
func (a *Archive) Discard() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = nil
	a.names = make(map[string]struct{})
	a.closed = true
}
