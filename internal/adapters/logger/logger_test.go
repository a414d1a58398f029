package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("loading scenarios")

	out := buf.String()
	require.Contains(t, out, "level=INFO")
	require.Contains(t, out, "loading scenarios")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Error(zerr.With(zerr.New("boom"), "scenario", "emits-model"))

	out := buf.String()
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "boom")
}
