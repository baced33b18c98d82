package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/viper"

	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
)

// aliases maps shorthand set names to canonical descriptor names.
var aliases = map[string]string{
	"s16":   "sukhbold_2016",
	"s18":   "sukhbold_2018",
	"WH02":  "wh_02",
	"WH_02": "wh_02",
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Descriptor{}
)

// CanonicalName resolves a set-name alias to its full descriptor name.
// Unknown names pass through unchanged.
func CanonicalName(setName string) string {
	if full, ok := aliases[setName]; ok {
		return full
	}
	return setName
}

// Load returns the descriptor for a progenitor set, reading and caching it
// on first access. Missing or malformed descriptor files wrap ErrConfig.
func Load(setName string) (*Descriptor, error) {
	name := CanonicalName(setName)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if d, ok := cache[name]; ok {
		return d, nil
	}

	d, err := read(name)
	if err != nil {
		return nil, err
	}
	cache[name] = d

	slog.Info("loaded dataset descriptor", "set", name, "columns", len(d.Columns))
	return d, nil
}

func read(name string) (*Descriptor, error) {
	path := paths.DescriptorPath(name)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: descriptor for set %q not found at %s", progerr.ErrConfig, name, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading descriptor %s: %v", progerr.ErrConfig, path, err)
	}

	var d Descriptor
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("%w: unmarshal descriptor %s: %v", progerr.ErrConfig, path, err)
	}

	if d.Name == "" {
		d.Name = name
	}
	d.applyDefaults()

	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
