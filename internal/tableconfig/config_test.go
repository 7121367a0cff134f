package tableconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadDecodesHCL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.hcl")
	contents := `
table "heads-up" {
  seed          = 7
  initial_stack = 500
  small_blind   = 10
  big_blind     = 20
  max_seats     = 2
}
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "heads-up", cfg.Table.Name)
	require.Equal(t, int64(7), cfg.Table.Seed)
	require.Equal(t, 500, cfg.Table.InitialStack)
	require.Equal(t, 10, cfg.Table.SmallBlind)
	require.Equal(t, 20, cfg.Table.BigBlind)
	require.Equal(t, 2, cfg.Table.MaxSeats)
	require.Equal(t, 30, cfg.Table.ActionTimeoutSeconds) // default filled in
}

func TestDefaultBigBlindDerivedFromSmallBlind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.hcl")
	contents := `
table "main" {
  small_blind = 25
}
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Table.BigBlind)
}

func TestValidateRejectsBadBlinds(t *testing.T) {
	cfg := Default()
	cfg.Table.BigBlind = cfg.Table.SmallBlind
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeSeats(t *testing.T) {
	cfg := Default()
	cfg.Table.MaxSeats = 10
	require.Error(t, cfg.Validate())
}

func TestToOptionsCarriesBlindsAndStack(t *testing.T) {
	cfg := Default()
	opts := cfg.ToOptions()
	require.Equal(t, cfg.Table.Seed, opts.Seed)
	require.Equal(t, cfg.Table.InitialStack, opts.InitialStack)
	require.Equal(t, cfg.Table.SmallBlind, opts.SmallBlind)
	require.Equal(t, cfg.Table.BigBlind, opts.BigBlind)
}
