package main

import (
	"context"
	"fmt"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/catalog"
	"github.com/litescript/ls-skydome/internal/config"
	"github.com/litescript/ls-skydome/internal/gradient"
	"github.com/litescript/ls-skydome/internal/logging"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/spectral"
	"github.com/litescript/ls-skydome/internal/starfield"
	"github.com/litescript/ls-skydome/internal/state"
)

// engine bundles the components built from a Config.
type engine struct {
	interp *palette.Interpolator
	comp   *gradient.Compositor
	proj   *starfield.Projector
	stars  []starfield.Star
	mgr    *state.Manager
	driver *state.Driver
}

func loadCatalog(ctx context.Context, c config.CatalogConfig) (astro.StarCatalog, error) {
	cat := astro.DefaultStarCatalog()
	if c.Path != "" {
		var err error
		if cat, err = catalog.Load(ctx, c.Path); err != nil {
			return astro.StarCatalog{}, err
		}
	}
	return cat.Brighter(c.MaxMagnitude), nil
}

func newEngine(ctx context.Context, cfg *config.Config, log *logging.Logger, vp starfield.Viewport) (*engine, error) {
	cat, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	stars, err := catalog.Build(cat, catalog.BuildOptions{Seed: cfg.Catalog.Seed, Field: cfg.Field})
	if err != nil {
		return nil, fmt.Errorf("building star field: %w", err)
	}
	proj, err := starfield.NewProjector(cfg.Starfield, spectral.Default())
	if err != nil {
		return nil, err
	}
	comp, err := gradient.New(cfg.Gradient)
	if err != nil {
		return nil, err
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.Refresh
	mgr := state.NewManager(stateCfg)

	interp := palette.Default()
	driver, err := state.NewDriver(mgr, state.DriverOptions{
		Interpolator: interp,
		Projector:    proj,
		Stars:        stars,
		Observer:     cfg.Observer,
		Viewport:     vp,
		Workers:      cfg.Render.Workers,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	log.Info("engine ready: %d named stars, %d field stars, observer %s (%.4f, %.4f)",
		len(cat.Stars), cfg.Field.Count, cfg.Observer.Name, cfg.Observer.LatDeg, cfg.Observer.LonDeg)
	return &engine{interp: interp, comp: comp, proj: proj, stars: stars, mgr: mgr, driver: driver}, nil
}
