package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
)

func writeDescriptor(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".toml"), []byte(content), 0o644))
}

const validDescriptor = `
name = "tset"

[load]
skip_rows = 1
match_substring = "_presn"
strip_prefix = "s"
strip_suffix = "_presn"
sort_key = "float"
derived = ["xi"]

[columns]
mass = 1
radius = 2
he4 = 3

[units]
mass = "g"
radius = "cm"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset", validDescriptor)

	d, err := Load("tset")
	require.NoError(t, err)

	assert.Equal(t, "tset", d.Name)
	assert.Equal(t, 1, d.Load.SkipRows)
	assert.Equal(t, []string{"xi"}, d.Load.Derived)
	assert.Equal(t, 1, d.Columns["mass"])
	assert.Equal(t, "cm", d.Unit("radius"))
	assert.Equal(t, []string{"mass", "radius", "he4"}, d.ColumnOrder())

	// core-rule defaults fill in the original thresholds
	assert.Equal(t, CoreRule{Isotope: "he4", Threshold: 0.6}, d.Scalars.HeCore)
	assert.Equal(t, CoreRule{Isotope: "si28", Threshold: 0.2}, d.Scalars.FeCore)
}

func TestLoad_Cached(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset_cached", validDescriptor)

	d1, err := Load("tset_cached")
	require.NoError(t, err)

	// second load must not reread the file
	require.NoError(t, os.Remove(filepath.Join(dir, "tset_cached.toml")))
	d2, err := Load("tset_cached")
	require.NoError(t, err)
	assert.Same(t, d1, d2)
}

func TestLoad_UnknownSet(t *testing.T) {
	t.Setenv(paths.ConfigEnv, t.TempDir())

	_, err := Load("no_such_set")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig), "want ErrConfig, got %v", err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset_bad", "[load\nskip_rows = nope")

	_, err := Load("tset_bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig))
}

func TestLoad_NoColumns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset_nocols", `
[load]
skip_rows = 0
`)

	_, err := Load("tset_nocols")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig))
	assert.Contains(t, err.Error(), "no columns")
}

func TestLoad_DuplicateIndex(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset_dup", `
[columns]
mass = 1
radius = 1
`)

	_, err := Load("tset_dup")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig))
	assert.Contains(t, err.Error(), "share index")
}

func TestLoad_BadThreshold(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, dir)
	writeDescriptor(t, dir, "tset_thr", `
[columns]
mass = 0
radius = 1

[scalars.he_core]
isotope = "he4"
threshold = 1.5
`)

	_, err := Load("tset_thr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig))
	assert.Contains(t, err.Error(), "threshold")
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "sukhbold_2016", CanonicalName("s16"))
	assert.Equal(t, "wh_02", CanonicalName("WH02"))
	assert.Equal(t, "wh_02", CanonicalName("WH_02"))
	assert.Equal(t, "custom", CanonicalName("custom"))
}
