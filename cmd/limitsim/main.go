// Package main provides a scenario-driven simulator for the limit break
// engine: it loads profiles and equipment content, replays a scripted
// battle, and reports the resulting gauges.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/MoVehrs/limitbreak/internal/config"
	"github.com/MoVehrs/limitbreak/internal/game/host"
	"github.com/MoVehrs/limitbreak/internal/game/limit"
	"github.com/MoVehrs/limitbreak/internal/observability"
	"github.com/MoVehrs/limitbreak/internal/storage/postgres"
)

// soundNotifier reports engine signals to the log; the simulator has no
// audio or command window to drive.
type soundNotifier struct {
	sound  config.SoundConfig
	logger *zap.Logger
}

func (n *soundNotifier) RefreshCommands() {
	n.logger.Info("battle command window refreshed")
}

func (n *soundNotifier) BarFilled() {
	if !n.sound.Enabled {
		return
	}
	n.logger.Info("ultimate bar filled",
		zap.String("sound", n.sound.File),
		zap.Int("volume", n.sound.Volume),
		zap.Int("speed", n.sound.Speed),
		zap.Int("pan", n.sound.Pan),
	)
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "content/scenario.yaml", "path to scenario file")
	persist := flag.Bool("persist", false, "load and save the variable bank via PostgreSQL")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	profiles, err := limit.LoadProfiles(cfg.Content.Profiles, logger)
	if err != nil {
		logger.Fatal("loading profiles", zap.Error(err))
	}
	mults, err := limit.LoadMultipliers(cfg.Content.Equipment, logger)
	if err != nil {
		logger.Fatal("loading equipment multipliers", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("profiles", len(profiles)),
		zap.Int("multipliers", len(mults)),
	)

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}
	field, err := scenario.Battlefield()
	if err != nil {
		logger.Fatal("building battlefield", zap.Error(err))
	}

	vars := host.NewMemoryVariables()

	var repo *postgres.VariableRepository
	if *persist {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)

		repo = postgres.NewVariableRepository(pool.DB())
		stored, err := repo.LoadAll(ctx)
		if err != nil {
			logger.Fatal("loading variable bank", zap.Error(err))
		}
		vars.Replace(stored)
		logger.Info("variable bank loaded", zap.Int("entries", len(stored)))
	}

	// scenario-local overrides come last
	for slot, value := range scenario.Variables {
		vars.Set(slot, value)
	}

	settings := limit.Settings{
		LimitCommandID:    cfg.Battle.LimitCommandID,
		UltimateCommandID: cfg.Battle.UltimateCommandID,
		UltimateGaugeSlot: cfg.Battle.UltimateGaugeSlot,
		FourActorUltimate: cfg.Battle.FourActorUltimate,
	}
	notify := &soundNotifier{sound: cfg.Battle.Sound, logger: logger}
	engine := limit.NewEngine(profiles, mults, settings, field, vars, notify, logger)

	logger.Info("running scenario", zap.String("name", scenario.Name))
	if err := NewRunner(scenario, engine, field, logger).Run(); err != nil {
		logger.Fatal("scenario failed", zap.Error(err))
	}

	for _, actorID := range field.Actors() {
		fmt.Fprintf(os.Stdout, "actor %d: gauge=%d mode=%s\n",
			actorID,
			profiles.Gauge(actorID, vars),
			profiles.ResolveMode(actorID, vars),
		)
	}
	if engine.Ultimate().Enabled() {
		fmt.Fprintf(os.Stdout, "ultimate: %d\n", engine.Ultimate().Value())
	}

	if repo != nil {
		if err := repo.SaveAll(ctx, vars.Snapshot()); err != nil {
			logger.Fatal("saving variable bank", zap.Error(err))
		}
		logger.Info("variable bank saved")
	}

	logger.Info("scenario complete", zap.Duration("elapsed", time.Since(start)))
}
