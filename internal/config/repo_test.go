package config_test

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/exception"
	"github.com/stretchr/testify/assert"
)

func TestConfigYAMLRepo(t *testing.T) {
	configPath := path.Join(t.TempDir(), "config.yml")

	repo := config.NewYAMLRepo(configPath)

	t.Run("returns record not found error", func(st *testing.T) {
		conf, err := repo.Load()

		assert.Nil(st, conf)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("saves and loads config", func(st *testing.T) {
		conf := config.Default()
		conf.Sweep.Ports = "22,80,443"
		conf.Sweep.Timeout = time.Second * 2
		conf.Hosts.Port = 22

		err := repo.Save(conf)

		assert.NoError(st, err)

		loaded, err := repo.Load()

		assert.NoError(st, err)
		assert.Equal(st, conf, loaded)
	})

	t.Run("parses durations written by hand", func(st *testing.T) {
		raw := []byte("sweep:\n  timeout: 750ms\n  concurrency: 5\n")

		err := os.WriteFile(configPath, raw, 0644)

		assert.NoError(st, err)

		loaded, err := repo.Load()

		assert.NoError(st, err)
		assert.Equal(st, time.Millisecond*750, loaded.Sweep.Timeout)
		assert.Equal(st, 5, loaded.Sweep.Concurrency)
	})

	t.Run("returns error for malformed yaml", func(st *testing.T) {
		err := os.WriteFile(configPath, []byte("sweep: [\n"), 0644)

		assert.NoError(st, err)

		_, err = repo.Load()

		assert.Error(st, err)
	})
}
