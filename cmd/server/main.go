package main

import (
	"context"
	"os"
	"time"

	// 1. Load .env BEFORE importing the function package
	_ "github.com/joho/godotenv/autoload"

	// Blank-import the function package so the init() runs
	_ "eventfinder"

	emulatorAuth "eventfinder/internal/auth"
	"eventfinder/internal/config"
	"eventfinder/internal/logging"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

// the main function starts the Functions Framework server - only needed when running locally
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	hostname := ""
	if cfg.Server.LocalOnly {
		hostname = "127.0.0.1"
	}

	// Create the local admin user if the Auth emulator is detected, so its tokens are valid.
	if os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") != "" {
		go createLocalAdminUser(cfg.Firestore.ProjectID, cfg.Firestore.AdminUID)
	}

	logging.Info().Msg("Server starting on http://127.0.0.1:" + cfg.Server.Port)
	logging.Info().Msg("Swagger UI: http://127.0.0.1:" + cfg.Server.Port + "/swagger/index.html")

	if err := funcframework.StartHostPort(hostname, cfg.Server.Port); err != nil {
		logging.Error().Err(err).Msg("funcframework.StartHostPort")
		os.Exit(1)
	}
}

func createLocalAdminUser(projectID, adminUID string) {
	// Give the server/emulator a split second to settle
	time.Sleep(1 * time.Second)

	if adminUID == "" {
		logging.Warn().Msg("[Admin Setup] skipping local user creation: FIRESTORE_ADMIN_UID not set")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		logging.Warn().Err(err).Msg("[Admin Setup] failed to init firebase app")
		return
	}
	client, err := app.Auth(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("[Admin Setup] failed to get auth client")
		return
	}

	if u, err := client.GetUser(ctx, adminUID); err == nil {
		logging.Info().Str("uid", adminUID).Str("name", u.DisplayName).Msg("[Admin Setup] user already exists")
	} else {
		params := (&auth.UserToCreate{}).
			UID(adminUID).
			Email("admin@localhost.com").
			EmailVerified(true).
			Password("admin123").
			DisplayName("Local Admin")

		if _, err := client.CreateUser(ctx, params); err != nil {
			logging.Error().Err(err).Msg("[Admin Setup] failed to create user (emulator might be down)")
			return
		}
		logging.Info().Str("uid", adminUID).Msg("[Admin Setup] created user")
	}

	token := emulatorAuth.GenerateEmulatorToken(projectID, adminUID)
	logging.Info().Msg("ADMIN TOKEN (Copy to Swagger 'Authorize'): Bearer " + token)
}
