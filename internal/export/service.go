// Package export runs generate-capture batches against the shared render
// surface and delivers the result as a single PDF or one zip archive.
package export

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/mockuments/internal/archive"
	"github.com/MrJamesThe3rd/mockuments/internal/capture"
	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/generator"
	"github.com/MrJamesThe3rd/mockuments/internal/output"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

const MaxQuantity = 50

type Generator interface {
	Generate(req generator.Request) (document.Record, error)
	LinkedInvoice(stmt document.Record, line document.InvoiceRef, regionCode string) (document.Record, error)
}

type Capturer interface {
	Capture(ctx context.Context, s *render.Surface) (capture.Artifact, error)
}

// Leaser hands out the render surface.
type Leaser interface {
	BeginExport(ctx context.Context) (*preview.Lease, error)
	TryBeginExport() (*preview.Lease, error)
}

type Request struct {
	Region         string
	Category       catalog.Category
	DocType        string
	Mode           document.Mode
	Quantity       int `json:"quantity" validate:"min=1,max=50"`
	LinkSupporting bool
	Manual         *document.Manual
	// Issuer overrides the session-pinned issuer for manual sales documents.
	Issuer       string
	WithPONumber bool
	// Progress receives the completed percentage after each record.
	Progress func(percent int)
}

type Result struct {
	BatchID uuid.UUID
	// Files lists every generated artifact in capture order.
	Files []string
	// Archive is the zip name, empty when a single PDF was delivered.
	Archive   string
	Delivered int
}

type Service struct {
	gen      Generator
	regions  *region.Table
	catalog  *catalog.Catalog
	leaser   Leaser
	capturer Capturer

	now    func() time.Time
	logger zerolog.Logger
	wait   bool
}

type Option func(*Service)

func WithNow(fn func() time.Time) Option {
	return func(s *Service) {
		s.now = fn
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithWait makes a batch wait for a busy surface instead of failing with
// ErrExportInProgress.
func WithWait(wait bool) Option {
	return func(s *Service) {
		s.wait = wait
	}
}

func NewService(gen Generator, regions *region.Table, cat *catalog.Catalog, leaser Leaser, capturer Capturer, opts ...Option) *Service {
	s := &Service{
		gen:      gen,
		regions:  regions,
		catalog:  cat,
		leaser:   leaser,
		capturer: capturer,
		now:      time.Now,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ExportBatch generates, captures and delivers a batch. Any failure aborts
// the whole batch and nothing is delivered.
func (s *Service) ExportBatch(ctx context.Context, req Request, sink output.Sink) (*Result, error) {
	entry, typ, err := s.catalog.Resolve(req.Category, req.DocType)
	if err != nil {
		return nil, err
	}

	p, err := s.regions.Lookup(req.Region)
	if err != nil {
		return nil, err
	}

	count := 1
	if req.Mode != document.ModeManual {
		if err := document.ValidateStruct(req); err != nil {
			return nil, err
		}

		count = req.Quantity
	}

	lease, err := s.lease(ctx)
	if err != nil {
		return nil, err
	}

	b := &batch{
		Service: s,
		lease:   lease,
		profile: p,
		entry:   entry,
		typ:     typ,
		req:     req,
		count:   count,
		link:    entry.Code == catalog.Supplier && req.LinkSupporting,
		date:    s.now().Format(time.DateOnly),
		result:  &Result{BatchID: uuid.New()},
	}

	if b.req.Issuer == "" {
		b.req.Issuer = lease.Issuer()
	}

	if count > 1 || b.link {
		b.archive = archive.New()
	}

	b.log = s.logger.With().
		Str("batch_id", b.result.BatchID.String()).
		Str("category", string(entry.Code)).
		Str("type", typ.Name).
		Str("region", p.Code).
		Int("count", count).
		Logger()

	res, err := b.run(ctx, sink)

	if rerr := lease.Release(); rerr != nil {
		b.log.Warn().Err(rerr).Msg("restoring preview after export")
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) lease(ctx context.Context) (*preview.Lease, error) {
	if s.wait {
		return s.leaser.BeginExport(ctx)
	}

	lease, err := s.leaser.TryBeginExport()
	if err != nil {
		return nil, fmt.Errorf("starting export: %w", err)
	}

	return lease, nil
}

type batch struct {
	*Service

	lease   *preview.Lease
	profile region.Profile
	entry   catalog.Entry
	typ     catalog.Type
	req     Request
	count   int
	link    bool
	date    string

	archive  *archive.Archive
	supplier string
	result   *Result
	log      zerolog.Logger

	pending []pendingFile
}

type pendingFile struct {
	name string
	blob []byte
}

func (b *batch) run(ctx context.Context, sink output.Sink) (*Result, error) {
	b.log.Info().Msg("export started")

	for i := range b.count {
		if err := b.one(ctx, i); err != nil {
			return nil, b.abort(i, err)
		}

		if b.req.Progress != nil {
			b.req.Progress(int(math.Round(100 * float64(i+1) / float64(b.count))))
		}
	}

	if err := b.deliver(ctx, sink); err != nil {
		return nil, b.abort(b.count-1, err)
	}

	b.log.Info().
		Int("files", len(b.result.Files)).
		Str("archive", b.result.Archive).
		Msg("export finished")

	return b.result, nil
}

func (b *batch) one(ctx context.Context, i int) error {
	rec, err := b.gen.Generate(generator.Request{
		Region:       b.profile.Code,
		Category:     b.entry.Code,
		DocType:      b.typ.Name,
		Mode:         b.req.Mode,
		Manual:       b.req.Manual,
		Issuer:       b.req.Issuer,
		WithPONumber: b.req.WithPONumber,
	})
	if err != nil {
		return fmt.Errorf("generating record %d: %w", i+1, err)
	}

	name := fmt.Sprintf("%s_%s_%d_%s.pdf", b.entry.Code, strings.ReplaceAll(b.typ.Name, " ", ""), i+1, b.date)

	if err := b.captureAs(ctx, rec, name); err != nil {
		return err
	}

	if !b.link {
		return nil
	}

	return b.linkInvoices(ctx, rec)
}

// linkInvoices captures one supporting invoice per statement line and then
// puts the statement back on the surface.
func (b *batch) linkInvoices(ctx context.Context, stmt document.Record) error {
	body, ok := stmt.Statement()
	if !ok {
		return fmt.Errorf("%w: supplier package needs a statement, got %s", document.ErrConfiguration, stmt.Kind)
	}

	b.supplier = stmt.Counterpart

	for _, line := range body.Lines {
		inv, err := b.gen.LinkedInvoice(stmt, line, b.profile.Code)
		if err != nil {
			return fmt.Errorf("linking invoice %s: %w", line.Reference, err)
		}

		name := fmt.Sprintf("%s_Invoice_%s.pdf", stmt.Counterpart, line.Reference)

		if err := b.captureAs(ctx, inv, name); err != nil {
			return err
		}
	}

	ready, err := b.lease.Show(stmt, b.profile)
	if err != nil {
		return fmt.Errorf("restoring statement: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (b *batch) captureAs(ctx context.Context, rec document.Record, name string) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("checking %s: %w", name, err)
	}

	if _, err := b.lease.Show(rec, b.profile); err != nil {
		return fmt.Errorf("showing %s: %w", name, err)
	}

	art, err := b.capturer.Capture(ctx, b.lease.Surface())
	if err != nil {
		return fmt.Errorf("capturing %s: %w", name, err)
	}

	name = b.unique(sanitize(name))
	b.result.Files = append(b.result.Files, name)

	if b.archive != nil {
		return b.archive.Add(name, art.PDF)
	}

	b.pending = append(b.pending, pendingFile{name: name, blob: art.PDF})

	return nil
}

func (b *batch) unique(name string) string {
	if b.archive == nil || !b.archive.Has(name) {
		return name
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !b.archive.Has(candidate) {
			return candidate
		}
	}
}

func (b *batch) deliver(ctx context.Context, sink output.Sink) error {
	if b.archive == nil {
		for _, f := range b.pending {
			if err := sink.Save(ctx, f.name, output.ContentTypePDF, f.blob); err != nil {
				return fmt.Errorf("delivering %s: %w", f.name, err)
			}

			b.result.Delivered++
		}

		return nil
	}

	name := fmt.Sprintf("Mockuments_Batch_%s.zip", b.date)
	if b.link && b.supplier != "" {
		name = sanitize(fmt.Sprintf("%s_Package_%s.zip", b.supplier, b.date))
	}

	blob, err := b.archive.Finalize()
	if err != nil {
		return fmt.Errorf("packing archive: %w", err)
	}

	if err := sink.Save(ctx, name, output.ContentTypeZip, blob); err != nil {
		return fmt.Errorf("delivering %s: %w", name, err)
	}

	b.result.Archive = name
	b.result.Delivered = 1

	return nil
}

func (b *batch) abort(i int, err error) error {
	if b.archive != nil {
		b.archive.Discard()
	}

	b.pending = nil

	ev := b.log.Error().Err(err).Int("record", i+1)

	var cerr *document.CaptureError
	if errors.As(err, &cerr) {
		ev = ev.Str("op", cerr.Op)
	}

	ev.Msg("export aborted")

	return fmt.Errorf("export batch: %w", err)
}

var pathSeparators = strings.NewReplacer("/", "-", "\\", "-")

func sanitize(name string) string {
	return pathSeparators.Replace(name)
}
