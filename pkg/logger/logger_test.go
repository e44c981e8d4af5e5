package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", " warn ", "error"} {
		l, err := New(lvl)
		require.NoError(t, err, lvl)
		require.NotNil(t, l)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose")
	require.Error(t, err)
}
