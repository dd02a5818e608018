package main

import (
	"html/template"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"domainpilot/internal/cloudflare"
	"domainpilot/internal/config"
	"domainpilot/internal/database"
	"domainpilot/internal/handlers"
	"domainpilot/internal/metrics"
	"domainpilot/internal/provisioning"
	"domainpilot/internal/proxyman"
	"domainpilot/internal/registrar"
	"domainpilot/internal/services"
	"domainpilot/internal/web"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Init DB
	if err := database.InitDB(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}

	// 3. Structured logger (zap)
	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// 4. Metrics server
	metrics.Init()
	go func() {
		if err := metrics.Serve(cfg.MetricsAddr); err != nil {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	// 5. Provisioning orchestrator
	if cfg.CloudflareAPIToken == "" {
		log.Printf("Warning: no Cloudflare API token configured; provisioning will fail until one is set")
	}
	orch := provisioning.New(provisioning.Options{
		Zones:        cloudflare.New(cfg.CloudflareAPIToken),
		ZoneAccounts: cloudflare.DBResolver{DB: database.DB},
		Registrar:    registrar.DBResolver{DB: database.DB},
		Recorder:     database.DomainRecorder{DB: database.DB},
		Log:          logger,
		Pause:        time.Duration(cfg.ProvisionPauseMS) * time.Millisecond,
	})

	// 6. API Server & HTML Renderer
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Validator = handlers.NewValidator()

	renderer := &web.TemplateRenderer{
		Templates: map[string]*template.Template{
			"dashboard.html": template.Must(template.ParseFiles("web/templates/layout.html", "web/templates/dashboard.html")),
		},
	}
	e.Renderer = renderer

	// Static files for Web UI
	e.Static("/static", "web")

	// API Routes
	dnsSvc := services.NewDNSService(cfg)
	proxySvc := services.NewProxyCheckService()
	sshSvc := services.NewSSHCheckService()
	npm := proxyman.New(cfg.ProxyManagerURL, cfg.ProxyManagerToken)
	api := e.Group("/api")
	handlers.RegisterRoutes(e, api, orch, dnsSvc, proxySvc, sshSvc, npm)

	log.Printf("DomainPilot starting on %s...", cfg.ListenAddr)
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}

func newLogger(level string) *zap.Logger {
	zc := zap.NewProductionConfig()
	if err := zc.Level.UnmarshalText([]byte(level)); err != nil {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	return logger
}
