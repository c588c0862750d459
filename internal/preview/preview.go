// Package preview owns the interactive preview session: the current
// selections, the record derived from them and the render surface token that
// export borrows while it runs.
package preview

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/generator"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

type State int

const (
	Previewing State = iota
	Exporting
)

func (s State) String() string {
	if s == Exporting {
		return "exporting"
	}

	return "previewing"
}

const (
	defaultRegion = "UK"

	defaultSalesCounterpart = "Acme Corp"
	defaultCostsCounterpart = "Joe's Coffee"
)

// Generator is the record source the controller drives.
type Generator interface {
	Generate(req generator.Request) (document.Record, error)
	PickIssuer(regionCode string) (string, error)
}

// Inputs are the user's current selections.
type Inputs struct {
	Region         string
	Category       catalog.Category
	DocType        string
	Mode           document.Mode
	Manual         document.Manual
	LinkSupporting bool
	WithPONumber   bool
}

// Snapshot is a consistent copy of the session.
type Snapshot struct {
	State   State
	Inputs  Inputs
	Issuer  string
	Record  document.Record
	Profile region.Profile
	Stale   bool
}

type Controller struct {
	gen     Generator
	catalog *catalog.Catalog
	regions *region.Table
	surface *render.Surface
	token   *semaphore.Weighted
	now     func() time.Time

	mu     sync.Mutex
	state  State
	inputs Inputs
	issuer string
	record document.Record
	stale  bool
}

type Option func(*Controller)

func WithNow(fn func() time.Time) Option {
	return func(c *Controller) {
		c.now = fn
	}
}

// New starts a session on the first category of the catalog in automated
// mode and shows its first record.
func New(gen Generator, cat *catalog.Catalog, regions *region.Table, surface *render.Surface, opts ...Option) (*Controller, error) {
	c := &Controller{
		gen:     gen,
		catalog: cat,
		regions: regions,
		surface: surface,
		token:   semaphore.NewWeighted(1),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	first := cat.Entries()[0]

	c.inputs = Inputs{
		Region:   defaultRegion,
		Category: first.Code,
		DocType:  first.DefaultType(),
		Mode:     document.ModeAutomated,
		Manual:   c.defaultManual(first.Code),
	}

	issuer, err := gen.PickIssuer(defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("drawing session issuer: %w", err)
	}

	c.issuer = issuer

	if err := c.regenerate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Controller) defaultManual(cat catalog.Category) document.Manual {
	n := c.now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
	due := today.AddDate(0, 0, 30)

	counterpart := defaultCostsCounterpart
	if cat == catalog.Sales {
		counterpart = defaultSalesCounterpart
	}

	return document.Manual{
		Counterpart: counterpart,
		Date:        today,
		DueDate:     &due,
		Total:       decimal.NewFromInt(120),
		AutoTax:     true,
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, _ := c.regions.Lookup(c.inputs.Region)

	return Snapshot{
		State:   c.state,
		Inputs:  c.inputs,
		Issuer:  c.issuer,
		Record:  c.record.Clone(),
		Profile: p,
		Stale:   c.stale,
	}
}

func (c *Controller) Issuer() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.issuer
}

// SetRegion switches region and redraws the session issuer from its pool.
func (c *Controller) SetRegion(code string) error {
	p, err := c.regions.Lookup(code)
	if err != nil {
		return err
	}

	issuer, err := c.gen.PickIssuer(p.Code)
	if err != nil {
		return err
	}

	return c.update(func(in *Inputs) {
		in.Region = p.Code
	}, func() {
		c.issuer = issuer
	})
}

// SetCategory resets the type to the category default. Categories without
// manual support force automated mode.
func (c *Controller) SetCategory(code catalog.Category) error {
	entry, err := c.catalog.Entry(code)
	if err != nil {
		return err
	}

	return c.update(func(in *Inputs) {
		in.Category = entry.Code
		in.DocType = entry.DefaultType()

		if !entry.ManualAllowed {
			in.Mode = document.ModeAutomated
		}

		if entry.Code == catalog.Sales || entry.Code == catalog.Costs {
			m := in.Manual
			m.Counterpart = c.defaultManual(entry.Code).Counterpart
			in.Manual = m
		}
	}, nil)
}

func (c *Controller) SetDocType(name string) error {
	c.mu.Lock()
	cat := c.inputs.Category
	c.mu.Unlock()

	_, typ, err := c.catalog.Resolve(cat, name)
	if err != nil {
		return err
	}

	return c.update(func(in *Inputs) {
		in.DocType = typ.Name
	}, nil)
}

func (c *Controller) SetMode(mode document.Mode) error {
	c.mu.Lock()
	cat := c.inputs.Category
	c.mu.Unlock()

	entry, err := c.catalog.Entry(cat)
	if err != nil {
		return err
	}

	switch mode {
	case document.ModeAutomated:
	case document.ModeManual:
		if !entry.ManualAllowed {
			return fmt.Errorf("%w: category %s only supports automated generation", document.ErrConfiguration, entry.Code)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", document.ErrConfiguration, mode)
	}

	return c.update(func(in *Inputs) {
		in.Mode = mode
	}, nil)
}

func (c *Controller) SetWithPONumber(on bool) error {
	return c.update(func(in *Inputs) {
		in.WithPONumber = on
	}, nil)
}

// SetLinkSupporting only affects export, so the preview is left alone.
func (c *Controller) SetLinkSupporting(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inputs.LinkSupporting = on
}

// SetManual validates in and patches the displayed sale record in place.
// Random fields such as auth codes and references keep their values.
func (c *Controller) SetManual(in document.ManualInput) error {
	m, err := document.ParseManual(in)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inputs.Manual = m

	if c.inputs.Mode != document.ModeManual || !c.record.Kind.IsSale() {
		return nil
	}

	if c.state == Exporting {
		c.stale = true
		return nil
	}

	p, err := c.regions.Lookup(c.inputs.Region)
	if err != nil {
		return err
	}

	rec, err := patchSale(c.record, m, c.inputs.Category, p)
	if err != nil {
		return err
	}

	if err := c.show(rec, p); err != nil {
		return err
	}

	return nil
}

func patchSale(cur document.Record, m document.Manual, cat catalog.Category, p region.Profile) (document.Record, error) {
	tax := m.Tax
	if m.AutoTax {
		tax = document.InclusiveTax(m.Total, p.TaxRate)
	}

	rec, err := document.Reprice(cur, m.Total, tax)
	if err != nil {
		return document.Record{}, err
	}

	body, _ := rec.Sale()

	if cat == catalog.Sales {
		body.BillTo = m.Counterpart
	} else {
		body.Issuer = m.Counterpart
	}

	rec.Counterpart = m.Counterpart
	rec.Date = m.Date

	if rec.Kind == document.KindInvoice && m.DueDate != nil {
		body.DueDate = new(*m.DueDate)
	}

	if err := rec.Validate(); err != nil {
		return document.Record{}, err
	}

	return rec, nil
}

// update applies mutate to a copy of the inputs. While previewing the copy
// is committed only if a record can be generated from it; while exporting it
// is committed straight away and regeneration waits for the lease release.
func (c *Controller) update(mutate func(*Inputs), commit func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, prevIssuer := c.inputs, c.issuer

	mutate(&c.inputs)

	if commit != nil {
		commit()
	}

	if c.state == Exporting {
		c.stale = true
		return nil
	}

	if err := c.regenerate(); err != nil {
		c.inputs, c.issuer = prev, prevIssuer
		return err
	}

	return nil
}

// regenerate must be called with mu held.
func (c *Controller) regenerate() error {
	p, err := c.regions.Lookup(c.inputs.Region)
	if err != nil {
		return err
	}

	rec, err := c.gen.Generate(c.request())
	if err != nil {
		return fmt.Errorf("generating preview: %w", err)
	}

	if err := c.show(rec, p); err != nil {
		return err
	}

	c.stale = false

	return nil
}

func (c *Controller) request() generator.Request {
	m := c.inputs.Manual

	return generator.Request{
		Region:       c.inputs.Region,
		Category:     c.inputs.Category,
		DocType:      c.inputs.DocType,
		Mode:         c.inputs.Mode,
		Manual:       &m,
		Issuer:       c.issuer,
		WithPONumber: c.inputs.WithPONumber,
	}
}

func (c *Controller) show(rec document.Record, p region.Profile) error {
	if _, err := c.surface.Show(rec, p); err != nil {
		return fmt.Errorf("showing record: %w", err)
	}

	c.record = rec

	return nil
}
