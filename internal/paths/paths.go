// Package paths resolves the on-disk locations of descriptor files and
// progenitor data trees. Two environment variables control the roots:
//
//   - PROGS_CONFIG_DIR: directory holding <set>.toml descriptors and networks/
//   - PROGS_DATA_DIR: directory holding one subdirectory per progenitor set
//
// Both default to repo-relative "config" and "data".
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ccsn-dev/progs/internal/progerr"
)

const (
	ConfigEnv = "PROGS_CONFIG_DIR"
	DataEnv   = "PROGS_DATA_DIR"
)

// ConfigRoot returns the descriptor directory.
func ConfigRoot() string {
	if dir := os.Getenv(ConfigEnv); dir != "" {
		return dir
	}
	return "config"
}

// DataRoot returns the top-level progenitor data directory.
func DataRoot() string {
	if dir := os.Getenv(DataEnv); dir != "" {
		return dir
	}
	return "data"
}

// DescriptorPath returns the path of the descriptor file for a set.
func DescriptorPath(setName string) string {
	return filepath.Join(ConfigRoot(), setName+".toml")
}

// NetworkPath returns the path of a nuclear network table.
func NetworkPath(networkName string) string {
	return filepath.Join(ConfigRoot(), "networks", networkName+".txt")
}

// SetDir returns the directory holding the model files of a set.
func SetDir(setName string) string {
	return filepath.Join(DataRoot(), setName)
}

// ModelFiles lists the model filenames in dir whose names contain match,
// in lexical order. A missing or unreadable directory wraps ErrNotFound.
func ModelFiles(dir, match string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading set directory %s: %v", progerr.ErrNotFound, dir, err)
	}

	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if strings.Contains(ent.Name(), match) {
			files = append(files, ent.Name())
		}
	}
	return files, nil
}

// ZAMSFromFile extracts the ZAMS mass identifier from a model filename
// by trimming the naming-convention prefix and suffix,
// e.g. "s9.0_presn" -> "9.0" for prefix "s", suffix "_presn".
func ZAMSFromFile(filename, prefix, suffix string) string {
	s := strings.TrimPrefix(filename, prefix)
	return strings.TrimSuffix(s, suffix)
}

// SortZAMS orders ZAMS identifiers in place. sortKey is "float" to order
// numerically or "string" for lexical order; identifiers that do not
// parse as floats fall back to lexical order among themselves.
func SortZAMS(zams []string, sortKey string) {
	if sortKey != "float" {
		sort.Strings(zams)
		return
	}
	sort.Slice(zams, func(i, j int) bool {
		fi, erri := strconv.ParseFloat(zams[i], 64)
		fj, errj := strconv.ParseFloat(zams[j], 64)
		if erri != nil || errj != nil {
			return zams[i] < zams[j]
		}
		return fi < fj
	})
}
