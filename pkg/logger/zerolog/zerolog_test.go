package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Config{Level: "debug", JSON: true, Out: buf})
	require.NoError(t, err)

	log.WithField("type", "float64").WithError(errors.New("boom")).Infof("registered %s", "linear")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "registered linear", line["message"])
	require.Equal(t, "float64", line["type"])
	require.Equal(t, "boom", line["error"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
}

func TestAdapter_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Config{Level: "trace", JSON: true, Out: buf})
	require.NoError(t, err)

	log.SetLevel(logger.WarnLevel)
	require.Equal(t, logger.WarnLevel, log.GetLevel())

	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestFormatLevel(t *testing.T) {
	require.Contains(t, formatLevel("info"), "[INF]")
	require.Contains(t, formatLevel("bogus"), "[UNK]")
	require.Equal(t, "UNKNOWN", formatLevel(42))
}
