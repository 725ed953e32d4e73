package commands

import (
	"fmt"
	"io"

	"github.com/wonny/lotopt/internal/catalog"
	"github.com/wonny/lotopt/internal/optimizer"
	"github.com/wonny/lotopt/pkg/config"
	"github.com/wonny/lotopt/pkg/logger"
)

// app holds the dependencies shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	catalog   *catalog.Catalog
	optimizer *optimizer.Optimizer
}

// newApp wires config → logger → catalog → optimizer.
// Logs go to logOut so stdout carries only the report.
func newApp(logOut io.Writer) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Create logger
	log := logger.NewWithWriter(cfg, logOut)

	// 3. Load catalog
	cat, _, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// 4. Create optimizer
	opt, err := optimizer.New(cat, cfg.Optimizer.MaxSearchSpace, log)
	if err != nil {
		return nil, fmt.Errorf("init optimizer: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"catalog":      cfg.Catalog.Path,
		"catalog_hash": opt.CatalogHash(),
		"stocks":       cat.Len(),
	}).Debug("Catalog loaded")

	return &app{cfg: cfg, log: log, catalog: cat, optimizer: opt}, nil
}
