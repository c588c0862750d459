// Package generator synthesizes document records from a region, category,
// document type and generation mode. Given a fixed seed and clock the output
// is fully deterministic.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

const genericCustomer = "Generic Corp Ltd."

type Request struct {
	Region   string
	Category catalog.Category
	DocType  string
	Mode     document.Mode
	// Manual carries the override values for MANUAL mode.
	Manual *document.Manual
	// Issuer is the session-pinned issuing party used for manual sales documents.
	Issuer       string
	WithPONumber bool
}

type Generator struct {
	regions *region.Table
	catalog *catalog.Catalog
	now     func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Generator)

// WithSeed makes every draw reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithNow overrides the clock used for "today".
func WithNow(fn func() time.Time) Option {
	return func(g *Generator) {
		g.now = fn
	}
}

func New(regions *region.Table, cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		regions: regions,
		catalog: cat,
		now:     time.Now,
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate produces a fresh, fully resolved record.
func (g *Generator) Generate(req Request) (document.Record, error) {
	p, err := g.regions.Lookup(req.Region)
	if err != nil {
		return document.Record{}, err
	}

	entry, typ, err := g.catalog.Resolve(req.Category, req.DocType)
	if err != nil {
		return document.Record{}, err
	}

	switch req.Mode {
	case document.ModeAutomated:
	case document.ModeManual:
		if !entry.ManualAllowed {
			return document.Record{}, fmt.Errorf("%w: category %s only supports automated generation",
				document.ErrConfiguration, entry.Code)
		}

		if typ.Kind.IsSale() && req.Manual == nil {
			return document.Record{}, fmt.Errorf("%w: manual mode needs override values", document.ErrConfiguration)
		}
	default:
		return document.Record{}, fmt.Errorf("%w: unknown mode %q", document.ErrConfiguration, req.Mode)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var rec document.Record

	switch typ.Kind {
	case document.KindReceipt, document.KindInvoice, document.KindCreditNote:
		rec = g.sale(p, entry.Code, typ.Kind, req)
	case document.KindBank:
		rec = g.bank(p, req.Mode)
	case document.KindStatement:
		rec = g.statement(p, req.Mode)
	case document.KindVault:
		rec, err = g.vault(p, typ.Name)
	case document.KindATM:
		rec = g.atm(p)
	default:
		err = fmt.Errorf("%w: no generator for kind %s", document.ErrConfiguration, typ.Kind)
	}

	if err != nil {
		return document.Record{}, err
	}

	return rec, nil
}

// PickIssuer draws a random supplier from the region pool. Callers pin the
// result for the rest of a session.
func (g *Generator) PickIssuer(regionCode string) (string, error) {
	p, err := g.regions.Lookup(regionCode)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pick(p.Pool.Suppliers), nil
}

func (g *Generator) today() time.Time {
	n := g.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

func (g *Generator) pick(items []string) string {
	return items[g.rnd.IntN(len(items))]
}

// amount draws a two-decimal value in [lo, hi).
func (g *Generator) amount(lo, hi int) decimal.Decimal {
	span := (hi - lo) * 100
	return document.Cents(int64(lo*100 + g.rnd.IntN(span)))
}

func (g *Generator) chance(p float64) bool {
	return g.rnd.Float64() < p
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (g *Generator) authCode() string {
	var sb strings.Builder
	for range 6 {
		sb.WriteByte(base36[g.rnd.IntN(len(base36))])
	}

	return sb.String()
}
