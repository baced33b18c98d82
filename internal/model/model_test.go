package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/quantities"
)

// fixture descriptor: a small set with composition columns and a network,
// mass already in grams, one header line.
const fixtureDescriptor = `
name = "fixset"

[load]
skip_rows = 1
match_substring = "_presn"
strip_prefix = "s"
strip_suffix = "_presn"
sort_key = "float"
derived = ["xi"]

[columns]
mass = 0
radius = 1
h1 = 2
he4 = 3
c12 = 4
si28 = 5

[units]
mass = "g"
radius = "cm"

[network]
name = "fixnet"
`

const fixtureNetwork = `isotope Z A
h1 1 1
he4 2 4
c12 6 12
si28 14 28
`

// fixtureRows builds zones from the center outward: an inner silicon core,
// a carbon shell, a helium core and a hydrogen envelope. Mass runs to
// 8.75 Msun.
func fixtureRows() []string {
	var rows []string
	n := 40
	for i := 0; i < n; i++ {
		mass := 8.75 * float64(i+1) / float64(n) // Msun
		radius := 1.0e8 + 5.0e12*float64(i)/float64(n)

		var h1, he4, c12, si28 float64
		switch {
		case mass < 1.4:
			si28 = 0.7
		case mass < 2.2:
			c12 = 0.4
		case mass < 7.0:
			he4 = 0.9
		default:
			h1 = 0.7
		}
		rows = append(rows, fmt.Sprintf("%e %e %f %f %f %f",
			mass*quantities.MsunGrams, radius, h1, he4, c12, si28))
	}
	return rows
}

func writeFixtureSet(t *testing.T, zams ...string) {
	t.Helper()
	cfgDir := t.TempDir()
	dataDir := t.TempDir()
	t.Setenv(paths.ConfigEnv, cfgDir)
	t.Setenv(paths.DataEnv, dataDir)

	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "fixset.toml"), []byte(fixtureDescriptor), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(cfgDir, "networks"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "networks", "fixnet.txt"), []byte(fixtureNetwork), 0o644))

	setDir := filepath.Join(dataDir, "fixset")
	require.NoError(t, os.MkdirAll(setDir, 0o755))
	content := "zone header\n" + strings.Join(fixtureRows(), "\n") + "\n"
	for _, z := range zams {
		name := fmt.Sprintf("s%s_presn", z)
		require.NoError(t, os.WriteFile(filepath.Join(setDir, name), []byte(content), 0o644))
	}
}

func TestLoad(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, "fixset", m.SetName)
	assert.Equal(t, "9.0", m.ZAMS)
	assert.Equal(t, "s9.0_presn", m.Filename)
	assert.Equal(t, "fixset: 9.0 Msun", m.Label())
	assert.Equal(t, 40, m.Profile.Rows())

	// scalar summary
	presn, ok := m.Scalars.Get("presn_mass")
	require.True(t, ok)
	assert.Greater(t, presn, 0.0)
	assert.Less(t, presn, 9.0, "mass loss during evolution")
	assert.InDelta(t, 8.75, presn, 1e-6)

	radius, ok := m.Scalars.Get("presn_radius")
	require.True(t, ok)
	assert.Greater(t, radius, 0.0)

	xi, ok := m.Scalars.Get("xi_2.5")
	require.True(t, ok)
	assert.Greater(t, xi, 0.0)
	_, ok = m.Scalars.Get("xi_1.75")
	assert.True(t, ok)
}

func TestLoad_CoreMasses(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m.Release()

	fe, ok := m.Scalars.Get("coremass_fe")
	require.True(t, ok)
	assert.Less(t, fe, 1.4, "innermost zone above the si28 threshold")

	he, ok := m.Scalars.Get("coremass_he")
	require.True(t, ok)
	assert.Greater(t, he, 2.2)
	assert.Less(t, he, 7.0, "outermost zone above the he4 threshold")

	co, ok := m.Scalars.Get("coremass_co")
	require.True(t, ok)
	assert.Greater(t, co, fe)
	assert.Less(t, co, he)

	env, ok := m.Scalars.Get("envelope_mass")
	require.True(t, ok)
	presn, _ := m.Scalars.Get("presn_mass")
	assert.Greater(t, env, 0.0)
	assert.Less(t, env, presn)
}

func TestLoad_MassMonotonic(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m.Release()

	mass, err := m.Profile.Column("mass")
	require.NoError(t, err)
	radius, err := m.Profile.Column("radius")
	require.NoError(t, err)
	for i := 1; i < len(mass); i++ {
		assert.GreaterOrEqual(t, mass[i], mass[i-1], "enclosed mass non-decreasing")
		assert.GreaterOrEqual(t, radius[i], radius[i-1])
	}
}

func TestLoad_CompositionSums(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m.Release()

	require.NotNil(t, m.Network)
	require.NotNil(t, m.Sums)
	assert.Equal(t, []string{"h1", "he4", "c12", "si28"}, m.Network.Names())
	require.Len(t, m.Sums.Ye, m.Profile.Rows())

	// hydrogen envelope zones: ye = X * Z/A = 0.7 for pure h1
	last := len(m.Sums.Ye) - 1
	assert.InDelta(t, 0.7, m.Sums.Ye[last], 1e-9)
	assert.InDelta(t, 0.7, m.Sums.SumX[last], 1e-9)
}

func TestLoad_Deterministic(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m1, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m1.Release()
	m2, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m2.Release()

	require.Equal(t, m1.Scalars.Names(), m2.Scalars.Names())
	for _, name := range m1.Scalars.Names() {
		v1, _ := m1.Scalars.Get(name)
		v2, _ := m2.Scalars.Get(name)
		assert.Equal(t, v1, v2, "scalar %s", name)
	}
}

func TestLoad_ModelNotFound(t *testing.T) {
	writeFixtureSet(t, "9.0")

	_, err := Load("fixset", "25.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrNotFound))

	var nf *progerr.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "25.0", nf.ZAMS)
	assert.Equal(t, "fixset", nf.Set)
}

func TestLoad_UnknownSet(t *testing.T) {
	t.Setenv(paths.ConfigEnv, t.TempDir())

	_, err := Load("missing_set", "9.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progerr.ErrConfig), "missing descriptor is a config error, got %v", err)
}

func TestCompactness(t *testing.T) {
	writeFixtureSet(t, "9.0")

	m, err := Load("fixset", "9.0")
	require.NoError(t, err)
	defer m.Release()

	xi, err := m.Compactness(2.5)
	require.NoError(t, err)
	fromScalars, _ := m.Scalars.Get("xi_2.5")
	assert.InDelta(t, fromScalars, xi, 1e-12)
}
