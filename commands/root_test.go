package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "cache"), expandPath("~/x/cache"))
	assert.Equal(t, "/tmp/cache", expandPath("/tmp/cache"))
	assert.Equal(t, "", expandPath(""))
}

func TestRunJourneyRejectsBadTimezone(t *testing.T) {
	old := timezone
	timezone = "Not/AZone"
	defer func() { timezone = old }()

	err := runJourney(rootCmd, nil)
	assert.ErrorContains(t, err, "invalid timezone")
}

func TestRunJourneyRejectsBadOutputFormat(t *testing.T) {
	oldTZ, oldOut := timezone, outputFormat
	timezone, outputFormat = "UTC", "xml"
	defer func() { timezone, outputFormat = oldTZ, oldOut }()

	err := runJourney(rootCmd, nil)
	assert.ErrorContains(t, err, "unknown output format")
}
