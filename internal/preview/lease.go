package preview

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

// Lease is the exclusive right to drive the render surface. While a lease is
// held the controller stops pushing preview records.
type Lease struct {
	c    *Controller
	once sync.Once
	err  error
}

// BeginExport blocks until the surface is free or ctx is done.
func (c *Controller) BeginExport(ctx context.Context) (*Lease, error) {
	if err := c.token.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for render surface: %w", err)
	}

	return c.begin(), nil
}

// TryBeginExport fails with ErrExportInProgress instead of waiting.
func (c *Controller) TryBeginExport() (*Lease, error) {
	if !c.token.TryAcquire(1) {
		return nil, document.ErrExportInProgress
	}

	return c.begin(), nil
}

func (c *Controller) begin() *Lease {
	c.mu.Lock()
	c.state = Exporting
	c.mu.Unlock()

	return &Lease{c: c}
}

// Inputs returns the selections the export should run with.
func (l *Lease) Inputs() Inputs {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()

	return l.c.inputs
}

// Issuer returns the session-pinned issuer.
func (l *Lease) Issuer() string {
	return l.c.Issuer()
}

func (l *Lease) Surface() *render.Surface {
	return l.c.surface
}

// Show pushes rec to the surface and returns its ready signal.
func (l *Lease) Show(rec document.Record, p region.Profile) (<-chan struct{}, error) {
	return l.c.surface.Show(rec, p)
}

// Release hands the surface back. The preview record is restored, or
// regenerated if the inputs changed during the export. Calling Release more
// than once is a no-op.
func (l *Lease) Release() error {
	l.once.Do(func() {
		c := l.c

		c.mu.Lock()
		c.state = Previewing

		if c.stale {
			l.err = c.regenerate()
		} else if p, err := c.regions.Lookup(c.inputs.Region); err != nil {
			l.err = err
		} else {
			l.err = c.show(c.record, p)
		}

		c.mu.Unlock()

		c.token.Release(1)
	})

	return l.err
}
