package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/robgonnella/sweep/cli/commands"
	app_info "github.com/robgonnella/sweep/internal/app-info"
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/report"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRuntTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	logFile := path.Join(configDir, app_info.NAME+".log")

	configFile := path.Join(configDir, "config.yml")

	dbFile := path.Join(configDir, app_info.NAME+".db")

	// share run-time config globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)
	viper.Set("config-file", configFile)
	viper.Set("database-file", dbFile)

	return nil
}

func openDatabase() (*gorm.DB, error) {
	dbFile := viper.GetString("database-file")

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&report.ReportModel{}, &report.ProbeModel{}); err != nil {
		return nil, err
	}

	return db, nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	err := setRuntTimeConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	db, err := openDatabase()

	if err != nil {
		// sweeps still work without history
		log.Warn().Err(err).Msg("failed to open report database, storage disabled")
	}

	appCore, err := core.CreateNewAppCore(db)

	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(commands.ExitCode(err))
	}

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		Core: appCore,
	})

	// Ctrl-C cancels the running sweep, partial results are still printed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		log.Error().Err(err).Msg("")
	}

	os.Exit(commands.ExitCode(err))
}
