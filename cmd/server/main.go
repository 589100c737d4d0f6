package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/scanlens/backend/config"
	httpDelivery "github.com/scanlens/backend/internal/delivery/http"
	"github.com/scanlens/backend/internal/domain"
	"github.com/scanlens/backend/internal/infrastructure/cache"
	"github.com/scanlens/backend/internal/infrastructure/googlebooks"
	"github.com/scanlens/backend/internal/infrastructure/offacts"
	"github.com/scanlens/backend/internal/infrastructure/openfda"
	"github.com/scanlens/backend/internal/infrastructure/openlibrary"
	"github.com/scanlens/backend/internal/infrastructure/upcitemdb"
	"github.com/scanlens/backend/internal/registry"
	"github.com/scanlens/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(cfg)
	log.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("starting ScanLens backend v1.0.0")

	// One HTTP client shared by every engine; it is safe for concurrent
	// use and pools connections across catalogs.
	httpClient := &http.Client{Timeout: 30 * time.Second}

	engines := buildEngines(cfg, httpClient, log)
	for _, e := range engines {
		log.WithFields(logrus.Fields{
			"engine":   e.Name(),
			"category": e.Category(),
			"priority": e.Priority(),
		}).Info("engine registered")
	}

	reg, err := registry.New(engines...)
	if err != nil {
		log.Fatalf("Failed to build engine registry: %v", err)
	}

	memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)

	lookupService := usecase.NewLookupService(reg, memoryCache, log, usecase.LookupServiceConfig{
		CallTimeout: cfg.Lookup.CallTimeout,
		CacheTTL:    cfg.Cache.TTL,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(lookupService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, log)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildEngines constructs every enabled engine from config. Registration
// order matters: it is the tie-break order within a priority tier.
func buildEngines(cfg *config.Config, httpClient *http.Client, log *logrus.Logger) []domain.LookupEngine {
	var engines []domain.LookupEngine

	if e := cfg.Engines.OpenFoodFacts; e.Enabled {
		engines = append(engines, offacts.New(offacts.Options{
			Name:              "openfoodfacts",
			BaseURL:           e.BaseURL,
			Priority:          e.Priority,
			Category:          domain.CategoryFood,
			RequestsPerMinute: e.RequestsPerMinute,
		}, httpClient, log))
	}
	if e := cfg.Engines.OpenLibrary; e.Enabled {
		engines = append(engines, openlibrary.New(e.BaseURL, e.Priority, httpClient, log))
	}
	if e := cfg.Engines.OpenFDA; e.Enabled {
		engines = append(engines, openfda.New(e.BaseURL, e.Priority, e.APIKey, httpClient, log))
	}
	if e := cfg.Engines.GoogleBooks; e.Enabled {
		engines = append(engines, googlebooks.New(e.BaseURL, e.Priority, e.APIKey, httpClient, log))
	}
	if e := cfg.Engines.OpenBeautyFacts; e.Enabled {
		engines = append(engines, offacts.New(offacts.Options{
			Name:              "openbeautyfacts",
			BaseURL:           e.BaseURL,
			Priority:          e.Priority,
			Category:          domain.CategoryCosmetics,
			RequestsPerMinute: e.RequestsPerMinute,
		}, httpClient, log))
	}
	if e := cfg.Engines.OpenPetFoodFacts; e.Enabled {
		engines = append(engines, offacts.New(offacts.Options{
			Name:              "openpetfoodfacts",
			BaseURL:           e.BaseURL,
			Priority:          e.Priority,
			Category:          domain.CategoryPetFood,
			RequestsPerMinute: e.RequestsPerMinute,
		}, httpClient, log))
	}
	if e := cfg.Engines.UPCItemDB; e.Enabled {
		engines = append(engines, upcitemdb.New(e.BaseURL, e.Priority, httpClient, log))
	}

	return engines
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.Server.Environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
