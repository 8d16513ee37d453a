package core

import (
	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/report"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// CreateNewAppCore creates and returns a new instance of *core.Core using
// the config file shared through viper. A nil db, or storage disabled in
// the config, leaves report storage off.
func CreateNewAppCore(db *gorm.DB) (*Core, error) {
	configPath := viper.GetString("config-file")
	configRepo := config.NewYAMLRepo(configPath)
	configService := config.NewConfigService(configRepo)

	conf, err := configService.Get()

	if err != nil {
		return nil, err
	}

	var reportService report.Service

	if db != nil && !conf.Storage.Disabled {
		reportRepo := report.NewSqliteRepo(db)
		reportService = report.NewReportService(reportRepo)
	}

	return New(
		*conf,
		configService,
		reportService,
		event.NewEventManager(),
	), nil
}
