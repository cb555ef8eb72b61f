// Package app wires configuration, storage, clients, and services into a
// single application core shared by cmd/arvest-server and the tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/arvest/internal/clients/gemini"
	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/services/advisor"
	"github.com/bobmcallan/arvest/internal/services/analysis"
	"github.com/bobmcallan/arvest/internal/services/audit"
	"github.com/bobmcallan/arvest/internal/services/investment"
	"github.com/bobmcallan/arvest/internal/services/product"
	"github.com/bobmcallan/arvest/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	TextGen     interfaces.TextGenClient
	Analysis    interfaces.AnalysisService
	Advisor     interfaces.AdvisorService
	Products    interfaces.ProductService
	Investments interfaces.InvestmentService
	Audit       interfaces.AuditService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services from configuration.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, ARVEST_CONFIG, then binary
	// dir, then development fallback
	if configPath == "" {
		configPath = os.Getenv("ARVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "arvest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/arvest.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var textgen interfaces.TextGenClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - AI features will use fallbacks")
		} else {
			textgen = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI features will use fallbacks")
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		TextGen:     textgen,
		Analysis:    analysis.NewService(storageManager, textgen, logger),
		Advisor:     advisor.NewService(textgen, logger),
		Products:    product.NewService(storageManager, textgen, logger),
		Investments: investment.NewService(storageManager, logger),
		Audit:       audit.NewService(storageManager, logger),
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.TextGen != nil {
		a.TextGen.Close()
		a.TextGen = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
