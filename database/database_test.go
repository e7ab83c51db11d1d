package database

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_FollowsLoggerLevel(t *testing.T) {
	t.Run("debug logger traces sql", func(t *testing.T) {
		var buf bytes.Buffer
		l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

		NewLogger(l).Info(context.Background(), "migrating %s", "users")

		assert.Contains(t, buf.String(), "migrating users")
		assert.Contains(t, buf.String(), "gorm")
	})

	t.Run("info logger only reports warnings", func(t *testing.T) {
		var buf bytes.Buffer
		l := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
		gl := NewLogger(l)

		gl.Info(context.Background(), "migrating %s", "users")
		assert.Empty(t, buf.String())

		gl.Warn(context.Background(), "slow query %d", 3)
		assert.Contains(t, buf.String(), "slow query 3")
	})
}
