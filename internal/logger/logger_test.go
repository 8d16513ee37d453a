package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/robgonnella/sweep/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	defer logger.GlobalSetOutput(zerolog.ConsoleWriter{Out: os.Stderr})

	t.Run("redirects loggers created before the output changed", func(st *testing.T) {
		log := logger.New()
		component := log.Component("core")

		buf := &bytes.Buffer{}

		logger.GlobalSetOutput(buf)

		log.Info().Msg("from singleton")
		component.Info().Msg("from component")

		assert.Contains(st, buf.String(), "from singleton")
		assert.Contains(st, buf.String(), "from component")
		assert.Contains(st, buf.String(), `"component":"core"`)
	})

	t.Run("writes to log file", func(st *testing.T) {
		file, err := os.CreateTemp(st.TempDir(), "sweep.log")

		assert.NoError(st, err)

		defer file.Close()

		component := logger.New().Component("sweeper")

		logger.GlobalSetLogFile(file)

		component.Debug().Msg("to file")

		data, err := os.ReadFile(file.Name())

		assert.NoError(st, err)
		assert.Contains(st, string(data), "to file")
	})
}
