package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := Setup("loud", "")
		assert.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "estimates.log")
		closer, err := Setup("debug", path)
		require.NoError(t, err)

		log.WithField("estimate_id", "est-1").Debug("[estimate][test] hello")
		require.NoError(t, closer.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "estimate_id=est-1"))
		assert.Equal(t, log.DebugLevel, log.GetLevel())
	})

	t.Run("discard", func(t *testing.T) {
		closer, err := Setup("info", Discard)
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
	})
}
