package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motionjam/shakedown/internal/logging"
)

type fakeClock struct{ t string }

func (f fakeClock) Now() string { return f.t }

func TestLoggerRingBufferKeepsMostRecent(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelDebug, logging.WithFile(&buf), logging.WithRingCapacity(3), logging.WithTimeSource(fakeClock{"t"}))

	l.Info("engine", "one")
	l.Info("engine", "two")
	l.Info("engine", "three")
	l.Info("engine", "four")

	entries := l.RecentEntries(10)
	assert.Len(t, entries, 3)
	assert.Equal(t, "two", entries[0].Message)
	assert.Equal(t, "four", entries[2].Message)
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LevelWarn, logging.WithFile(&buf))

	l.Debug("engine", "hidden")
	l.Info("engine", "also hidden")
	l.Warn("engine", "shown")

	entries := l.RecentEntries(10)
	assert.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0].Message)
}
