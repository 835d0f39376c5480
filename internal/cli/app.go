// filepath: internal/cli/app.go
package cli

import (
	"fmt"

	"mediacatalog/internal/logging"
	"mediacatalog/internal/media"
	"mediacatalog/internal/remote"
	"mediacatalog/internal/repository"
	"mediacatalog/internal/services"
	"mediacatalog/internal/uploader"
)

// app is the wired service graph every subcommand runs against.
type app struct {
	catalog services.CatalogService
	close   func()
}

// buildApp opens the store, applies migrations, seeds configured albums and
// wires the facade. The remote mirror is attached only when enabled.
func buildApp() (*app, error) {
	repo, err := repository.NewRepository(cfg, logging.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}
	if err := repo.MigrateUp(); err != nil {
		repo.Close()
		return nil, err
	}

	var store repository.Store = repo
	if remoteClient := remote.NewClient(cfg); remoteClient != nil {
		logging.Log.Infof("Remote mirror enabled: %s", cfg.Remote.BaseURL)
		store = repository.NewMirrored(repo, remoteClient, logging.Log)
	}

	up := uploader.NewClient(cfg, logging.Log)
	der := media.NewDeriver(cfg)
	catalog := services.NewCatalog(store, up, der, cfg, logging.Log)

	if err := catalog.EnsureSeeds(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to seed albums: %w", err)
	}

	return &app{
		catalog: catalog,
		close:   func() { repo.Close() },
	}, nil
}
