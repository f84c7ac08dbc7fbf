package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skywatch-ops/riskfeed/internal/config"
)

func TestDefaultRegionsLookup(t *testing.T) {
	table := config.DefaultRegions()

	kws := table.Keywords("Black Sea")
	require.Contains(t, kws, "ukraine")
	require.Contains(t, kws, "black sea")

	// Lookup is case-insensitive.
	require.Equal(t, kws, table.Keywords("black sea"))
	require.Equal(t, kws, table.Keywords("  BLACK SEA  "))

	require.Nil(t, table.Keywords("Atlantis"))
}

func TestDefaultRegionNames(t *testing.T) {
	names := config.DefaultRegions().Names()
	require.Contains(t, names, "Black Sea")
	require.Contains(t, names, "Eastern Mediterranean")
	require.Len(t, names, 5)
}

func TestLoadRegionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	content := `
regions:
  Baltic Sea:
    - baltic
    - kaliningrad
    - Gotland
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := config.LoadRegions(path)
	require.NoError(t, err)

	kws := table.Keywords("Baltic Sea")
	require.Equal(t, []string{"baltic", "kaliningrad", "gotland"}, kws)
	require.Equal(t, []string{"Baltic Sea"}, table.Names())
}

func TestLoadRegionsEmptyPathUsesDefaults(t *testing.T) {
	table, err := config.LoadRegions("")
	require.NoError(t, err)
	require.NotEmpty(t, table.Keywords("Persian Gulf"))
}

func TestLoadRegionsRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions: {}\n"), 0o600))

	_, err := config.LoadRegions(path)
	require.Error(t, err)
}
