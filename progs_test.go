package progs_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccsn-dev/progs"
	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/quantities"
)

// writeSukhboldFixture generates a synthetic s<zams>_presn file matching
// the shipped sukhbold_2016 descriptor layout: an 8.75 Msun presupernova
// star with an iron core, carbon shell, helium core and hydrogen envelope.
func writeSukhboldFixture(t *testing.T, d *progs.Descriptor, dataDir, zams string) {
	t.Helper()

	ncols := 0
	for _, idx := range d.Columns {
		if idx+1 > ncols {
			ncols = idx + 1
		}
	}

	n := 60
	var sb strings.Builder
	sb.WriteString("synthetic presn model\n")
	sb.WriteString("zone columns follow\n")
	for i := 0; i < n; i++ {
		mass := 8.75 * float64(i+1) / float64(n) // Msun
		radius := 1.0e8 + 6.9e12*float64(i)/float64(n)
		temperature := 1.0e9 / float64(i+1)
		density := 1.0e9 / float64(i*i+1)

		var h1, he4, c12, o16, si28 float64
		switch {
		case mass < 1.4:
			si28 = 0.7
			o16 = 0.3
		case mass < 2.2:
			c12 = 0.4
			o16 = 0.6
		case mass < 7.0:
			he4 = 0.9
			c12 = 0.1
		default:
			h1 = 0.7
			he4 = 0.3
		}

		row := make([]string, ncols)
		for j := range row {
			row[j] = "0.0"
		}
		set := func(name string, v float64) {
			if idx, ok := d.Columns[name]; ok {
				row[idx] = fmt.Sprintf("%e", v)
			}
		}
		set("mass", mass*quantities.MsunGrams)
		set("radius", radius)
		set("density", density)
		set("temperature", temperature)
		set("abar", 4.0)
		set("ye", 0.5)
		set("h1", h1)
		set("he4", he4)
		set("c12", c12)
		set("o16", o16)
		set("si28", si28)

		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}

	setDir := filepath.Join(dataDir, d.Name)
	require.NoError(t, os.MkdirAll(setDir, 0o755))
	filename := fmt.Sprintf("s%s_presn", zams)
	require.NoError(t, os.WriteFile(filepath.Join(setDir, filename), []byte(sb.String()), 0o644))
}

func setupSukhbold(t *testing.T, zams ...string) {
	t.Helper()
	t.Setenv(paths.ConfigEnv, "config")
	dataDir := t.TempDir()
	t.Setenv(paths.DataEnv, dataDir)

	d, err := progs.LoadDescriptor("s16")
	require.NoError(t, err)
	require.Equal(t, "sukhbold_2016", d.Name)

	for _, z := range zams {
		writeSukhboldFixture(t, d, dataDir, z)
	}
}

func TestLoadModel_Sukhbold9(t *testing.T) {
	setupSukhbold(t, "9.0")

	m, err := progs.LoadModel("sukhbold_2016", "9.0")
	require.NoError(t, err)
	defer m.Release()

	presn, ok := m.Scalars.Get("presn_mass")
	require.True(t, ok, "scalar summary must contain presn_mass")
	assert.Greater(t, presn, 0.0)
	assert.Less(t, presn, 9.0, "mass loss during evolution")

	for _, key := range []string{"presn_radius", "presn_luminosity", "xi_1.75", "xi_2.5", "coremass_fe"} {
		_, ok := m.Scalars.Get(key)
		assert.True(t, ok, "missing scalar %s", key)
	}

	// composition sums come from the shipped approx19 network
	require.NotNil(t, m.Network)
	assert.Len(t, m.Network.Isotopes, 19)
	require.NotNil(t, m.Sums)
}

func TestLoadModel_Alias(t *testing.T) {
	setupSukhbold(t, "9.0")

	m, err := progs.LoadModel("s16", "9.0")
	require.NoError(t, err)
	defer m.Release()
	assert.Equal(t, "sukhbold_2016", m.SetName)
}

func TestLoadModel_Deterministic(t *testing.T) {
	setupSukhbold(t, "9.0")

	m1, err := progs.LoadModel("sukhbold_2016", "9.0")
	require.NoError(t, err)
	defer m1.Release()
	m2, err := progs.LoadModel("sukhbold_2016", "9.0")
	require.NoError(t, err)
	defer m2.Release()

	require.Equal(t, m1.Scalars.Names(), m2.Scalars.Names())
	for _, name := range m1.Scalars.Names() {
		v1, _ := m1.Scalars.Get(name)
		v2, _ := m2.Scalars.Get(name)
		assert.Equal(t, v1, v2, "scalar %s", name)
	}
}

func TestLoadDescriptor_UnknownDataset(t *testing.T) {
	t.Setenv(paths.ConfigEnv, "config")

	_, err := progs.LoadDescriptor("hegerwoosley_2099")
	require.Error(t, err)
	assert.True(t, errors.Is(err, progs.ErrConfig), "unknown dataset is a configuration error, got %v", err)
	assert.False(t, errors.Is(err, progs.ErrNotFound))
}

func TestLoadSet_Sukhbold(t *testing.T) {
	setupSukhbold(t, "9.0", "10.0")

	s, err := progs.LoadSet("s16")
	require.NoError(t, err)
	assert.Equal(t, []string{"9.0", "10.0"}, s.Masses)
	assert.Empty(t, s.Failures)

	rec, err := s.Table()
	require.NoError(t, err)
	defer rec.Release()
	assert.EqualValues(t, 2, rec.NumRows())
}
