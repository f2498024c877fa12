package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/waynote/waynote/internal/blob"
	"github.com/waynote/waynote/internal/config"
	"github.com/waynote/waynote/internal/index"
	"github.com/waynote/waynote/internal/nav"
	"github.com/waynote/waynote/internal/notes"
	"github.com/waynote/waynote/internal/store"
)

// app wires the repository and its collaborators together for one CLI
// invocation.
type app struct {
	cfg    *config.Config
	db     *store.SQLiteStore
	idx    *index.FTSIndex
	proj   *index.Projector
	blobs  *blob.AudioFiles
	notes  *notes.Store
	router *nav.Router
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	idx, err := index.OpenFTS(cfg.IndexPath())
	if err != nil {
		db.Close()
		return nil, err
	}
	proj := index.NewProjector(idx, slog.Default())
	blobs := blob.New(cfg.AudioPath(), slog.Default())

	repo, err := notes.Open(db, blobs, proj, slog.Default())
	if err != nil {
		proj.Close()
		idx.Close()
		db.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		db:     db,
		idx:    idx,
		proj:   proj,
		blobs:  blobs,
		notes:  repo,
		router: nav.NewRouter(repo, slog.Default()),
	}, nil
}

// close drains the index projector before tearing down the databases.
func (a *app) close() {
	a.proj.Close()
	if err := a.idx.Close(); err != nil {
		slog.Error("failed to close search index", "error", err)
	}
	if err := a.db.Close(); err != nil {
		slog.Error("failed to close note database", "error", err)
	}
}

func configPath() string {
	if dataDir != "" {
		return filepath.Join(dataDir, "config.yaml")
	}
	return filepath.Join(config.Default().DataDir, "config.yaml")
}
