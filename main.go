package main

import (
	"context"
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/golangdaddy/roadkill/pkg/config"
	"github.com/golangdaddy/roadkill/pkg/game"
	"github.com/golangdaddy/roadkill/pkg/input/keyboard"
	"github.com/golangdaddy/roadkill/pkg/logging"
	"github.com/golangdaddy/roadkill/pkg/models"
	"github.com/golangdaddy/roadkill/pkg/storage"
	"github.com/golangdaddy/roadkill/pkg/telemetry"
)

func main() {
	configDir := "."
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	settings, err := config.Load(configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(logging.Options{Level: settings.LogLevel, Pretty: settings.Log.Pretty})

	ctx := context.Background()

	store, err := storage.Open(settings.Storage.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", settings.Storage.Path).Msg("failed to open storage")
	}
	defer store.Close()

	provider := telemetry.NewProvider(settings.Telemetry.Enabled)
	provider.Install()
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to shut down telemetry")
		}
	}()
	metrics, err := telemetry.NewMetrics(provider.Meter())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create metrics")
	}

	catalog, err := models.LoadCatalogFile(settings.Cars.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", settings.Cars.Path).Msg("failed to load car catalog")
	}
	status, err := models.LoadStatusFile(settings.Status.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", settings.Status.Path).Msg("failed to load upgrade status")
	}
	profile, found, err := store.LoadProfile(settings.Game.Profile)
	if err != nil {
		logger.Fatal().Err(err).Str("profile", settings.Game.Profile).Msg("failed to load profile")
	}
	if !found {
		logger.Info().Str("profile", profile.Name).Msg("created new profile")
	}

	keys, err := keyboard.New(settings.InputControls())
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid key bindings")
	}

	g, err := game.NewGame(ctx, game.Deps{
		Settings: settings,
		Logger:   logger,
		Store:    store,
		Metrics:  metrics,
		Keyboard: keys,
		Catalog:  catalog,
		Status:   status,
		Profile:  profile,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start game")
	}

	ebiten.SetWindowSize(settings.Screen.Width, settings.Screen.Height)
	ebiten.SetWindowTitle("Roadkill")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error().Err(err).Msg("game exited with error")
	}

	if totals, err := provider.Totals(ctx); err == nil && settings.Telemetry.Enabled {
		logger.Info().Int64("kills", totals.Kills).Int64("bounty", totals.Bounty).Int64("runs", totals.Runs).Msg("session totals")
	}
}
