package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/conorfennell/grindstone/internal/config"
	"github.com/conorfennell/grindstone/internal/gitbackup"
	"github.com/conorfennell/grindstone/internal/storage"
	"github.com/conorfennell/grindstone/internal/storage/csvstore"
	"github.com/conorfennell/grindstone/internal/storage/sqlitestore"
	"github.com/conorfennell/grindstone/internal/store"
	"github.com/conorfennell/grindstone/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var adapter storage.Adapter
	switch cfg.Data.Driver {
	case config.DriverSQLite:
		db, err := sqlitestore.Open(cfg.Data.Path)
		if err != nil {
			slog.Error("failed to open database", "path", cfg.Data.Path, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		adapter = db
	default:
		adapter = csvstore.New(cfg.Data.Path)
	}

	if cfg.Backup.Repo != "" {
		backup, err := gitbackup.Open(cfg.Backup.Repo)
		if err != nil {
			slog.Error("failed to open backup repo", "repo", cfg.Backup.Repo, "error", err)
			os.Exit(1)
		}
		adapter = backup.Adapter(adapter, cfg.Data.Path)
		slog.Info("snapshot backup enabled", "repo", cfg.Backup.Repo)
	}

	st := store.New(adapter)
	if err := st.Initialize(); err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}

	if cfg.Data.Watch && cfg.Data.Driver == config.DriverCSV {
		watcher := store.NewSnapshotWatcher(st)
		err := config.WatchFile(cfg.Data.Path, func() {
			reloaded, err := watcher.OnChange()
			if err != nil {
				slog.Error("snapshot reload failed", "error", err)
				return
			}
			if reloaded {
				slog.Info("snapshot reloaded after external change", "path", cfg.Data.Path)
			}
		})
		if err != nil {
			slog.Error("failed to watch snapshot", "path", cfg.Data.Path, "error", err)
			os.Exit(1)
		}
	}

	srv := web.NewServer(st)
	slog.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
