package main

import (
	"errors"
	"fmt"
	"os"

	app_info "github.com/robgonnella/sweep/internal/app-info"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/scripts/bump-version/version"
)

func main() {
	log := logger.New()

	args := os.Args[1:]

	if len(args) != 1 {
		log.Fatal().Err(errors.New("must provide version as argument")).Msg("")
	}

	info := version.AppInfo{Name: app_info.NAME, Version: args[0]}

	generator := version.NewTemplateGenerator(
		"internal/app-info/app-info.go",
		"internal/templates/app-info.go.tmpl",
	)

	if err := version.Bump(info, generator, version.NewGit()); err != nil {
		log.Fatal().Err(err).Str("version", info.Version).Msg("failed to bump version")
	}

	fmt.Printf("Bumped %s from %s to %s\n", info.Name, app_info.VERSION, info.Version)

	fmt.Println("To deploy run: \"git push <repo> <branch> --tags\"")
}
