package function

import (
	"context"
	"eventfinder/internal/config"
	"eventfinder/internal/logging"
	"eventfinder/internal/repository"
	"eventfinder/internal/service"
	"eventfinder/internal/session"
	"eventfinder/internal/transport"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "eventfinder/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// demoCatalogSize is the number of events seeded when database.seed_catalog is on.
const demoCatalogSize = 120

// @title Event Finder API
// @version 1.0
// @description Browse, filter and sort events; manage profiles and favorite genres.

// @host 127.0.0.1:5000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger := logging.Logger()

	// 1. Initialize the event catalog
	db, err := repository.OpenSQLite(repository.SQLiteConfig{
		Path:     cfg.Database.Path,
		PoolSize: cfg.Database.PoolSize,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog database")
	}

	// 2. Initialize Firestore (profiles)
	fsClient, err := firestore.NewClientWithDatabase(ctx, cfg.Firestore.ProjectID, cfg.Firestore.DatabaseID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create firestore client")
	}

	// 3. Initialize Firebase Auth, same project as Firestore
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firestore.ProjectID})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize firebase app")
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get auth client")
	}

	// 4. Initialize Domain Layers
	eventRepo := repository.NewEventRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	profileRepo := repository.NewProfileRepository(fsClient)

	eventSvc := service.NewEventService(eventRepo, service.PageLimits{
		Default: cfg.List.DefaultPageSize,
		Max:     cfg.List.MaxPageSize,
	})
	genreSvc := service.NewGenreService(genreRepo, profileRepo)
	profileSvc := service.NewProfileService(profileRepo, genreRepo)

	if cfg.Database.SeedCatalog {
		start := time.Now().UTC().Truncate(24 * time.Hour)
		if err := eventSvc.ImportCatalog(ctx, repository.DemoCatalog(start, demoCatalogSize)); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo catalog")
		}
		logger.Info().Int("events", demoCatalogSize).Msg("demo catalog seeded")
	}

	views := session.NewRegistry(eventSvc, session.Config{
		PageSize:      cfg.List.PageSize,
		TTL:           cfg.List.ViewTTL,
		SweepInterval: cfg.List.SweepInterval,
		MaxViews:      cfg.List.MaxViews,
	}, logger.With().Str("component", "session").Logger())
	// The function instance lives as long as the process.
	go views.Run(context.Background())

	router := transport.NewRouter(transport.Services{
		Events:   eventSvc,
		Genres:   genreSvc,
		Profiles: profileSvc,
		Views:    views,
	})

	// Middleware Chain:
	// CORS -> Security Headers -> Request Logging -> Auth -> Compression -> Router
	handler := transport.WithCompression(router)
	handler = transport.WithAuthProtection(handler, authClient, true)
	handler = transport.WithRequestLogging(handler)
	handler = transport.WithSecurityHeaders(handler, cfg.IsProduction())
	// Outer-most layer to handle OPTIONS requests
	handler = transport.WithCORS(handler, cfg.Security.CORSOrigin)

	swagger := httpSwagger.Handler(httpSwagger.DeepLinking(false))
	metrics := promhttp.Handler()

	// 5. Register Function
	functions.HTTP("EventFunction", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/swagger/"):
			swagger(w, r)
		case r.URL.Path == "/metrics":
			metrics.ServeHTTP(w, r)
		default:
			handler.ServeHTTP(w, r)
		}
	})

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Path).
		Msg("event function registered")
}
