// Package app assembles the services shared by the api, cli and tui
// binaries from a loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/mockuments/internal/capture"
	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/config"
	"github.com/MrJamesThe3rd/mockuments/internal/database"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/export"
	"github.com/MrJamesThe3rd/mockuments/internal/generator"
	"github.com/MrJamesThe3rd/mockuments/internal/output"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
	"github.com/MrJamesThe3rd/mockuments/internal/region/store"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
	"github.com/MrJamesThe3rd/mockuments/internal/render/gotenberg"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Regions *region.Table
	Catalog *catalog.Catalog

	Generator *generator.Generator
	Surface   *render.Surface
	Preview   *preview.Controller
	Gotenberg *gotenberg.Client
	Capture   *capture.Pipeline
	Export    *export.Service
}

type Option func(*options)

type options struct {
	raster render.Rasterizer
	wait   bool
}

// WithRasterizer replaces the Gotenberg client used for captures.
func WithRasterizer(r render.Rasterizer) Option {
	return func(o *options) {
		o.raster = r
	}
}

// WithWait makes exports queue behind a running export.
func WithWait() Option {
	return func(o *options) {
		o.wait = true
	}
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	regions, err := loadRegions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()

	var genOpts []generator.Option
	if cfg.Generator.Seed != 0 {
		genOpts = append(genOpts, generator.WithSeed(cfg.Generator.Seed))
	}

	gen := generator.New(regions, cat, genOpts...)

	views, err := render.NewViews()
	if err != nil {
		return nil, fmt.Errorf("loading views: %w", err)
	}

	surface := render.NewSurface(views)

	controller, err := preview.New(gen, cat, regions, surface)
	if err != nil {
		return nil, fmt.Errorf("starting preview: %w", err)
	}

	client := gotenberg.NewClient(cfg.Gotenberg.URL, cfg.Gotenberg.Timeout)

	raster := o.raster
	if raster == nil {
		raster = client
	}

	pipeline := capture.New(raster, capture.WithTilt(cfg.Capture.Tilt))

	svc := export.NewService(gen, regions, cat, controller, pipeline,
		export.WithLogger(log.With().Str("component", "export").Logger()),
		export.WithWait(o.wait),
	)

	return &App{
		Config:    cfg,
		Logger:    log,
		Regions:   regions,
		Catalog:   cat,
		Generator: gen,
		Surface:   surface,
		Preview:   controller,
		Gotenberg: client,
		Capture:   pipeline,
		Export:    svc,
	}, nil
}

func loadRegions(ctx context.Context, cfg *config.Config) (*region.Table, error) {
	base := region.Default()

	switch cfg.Pools.Source {
	case "", config.PoolsBuiltin:
		return base, nil
	case config.PoolsCSV:
		f, err := os.Open(cfg.Pools.File)
		if err != nil {
			return nil, fmt.Errorf("opening pools file: %w", err)
		}
		defer f.Close()

		pools, err := region.ReadPools(f)
		if err != nil {
			return nil, fmt.Errorf("reading pools file: %w", err)
		}

		return base.WithPools(pools)
	case config.PoolsDB:
		db, err := database.Open(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, err
		}
		defer db.Close()

		pools, err := store.New(db).Pools(ctx)
		if err != nil {
			return nil, err
		}

		return base.WithPools(pools)
	}

	return nil, fmt.Errorf("%w: unknown pools source %q", document.ErrConfiguration, cfg.Pools.Source)
}

// Sink returns the configured destination: S3 when a bucket is set,
// otherwise dir (or the configured output directory when dir is empty).
func (a *App) Sink(ctx context.Context, dir string) (output.Sink, error) {
	if a.Config.Output.S3Bucket != "" {
		client, err := output.NewS3Client(ctx, a.Config.Output.AWSRegion, a.Config.Output.AWSProfile)
		if err != nil {
			return nil, err
		}

		return output.NewS3Sink(client, a.Config.Output.S3Bucket, a.Config.Output.S3Prefix), nil
	}

	if dir == "" {
		dir = a.Config.Output.Dir
	}

	if dir == "" {
		return nil, errors.New("no output directory configured")
	}

	return output.NewDirSink(dir), nil
}
