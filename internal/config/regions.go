package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegionTable maps region names to their query keyword lists. Keys are
// matched case-insensitively; the table is read-only after load.
type RegionTable struct {
	keywords map[string][]string
	names    []string
}

// DefaultRegions returns the built-in region keyword table.
func DefaultRegions() *RegionTable {
	return newRegionTable(map[string][]string{
		"Eastern Mediterranean": {"eastern mediterranean", "cyprus", "greece", "turkey", "syria", "lebanon", "israel"},
		"Black Sea":             {"black sea", "ukraine", "russia", "crimea", "odesa", "bosphorus"},
		"Persian Gulf":          {"persian gulf", "strait of hormuz", "iran", "saudi arabia", "uae", "qatar", "bahrain"},
		"South China Sea":       {"south china sea", "taiwan", "taiwan strait", "philippines", "spratly", "china"},
		"North Atlantic":        {"north atlantic", "greenland", "iceland", "norwegian sea", "arctic"},
	})
}

func newRegionTable(raw map[string][]string) *RegionTable {
	t := &RegionTable{keywords: make(map[string][]string, len(raw))}
	for region, kws := range raw {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		clean := make([]string, 0, len(kws))
		for _, kw := range kws {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				clean = append(clean, kw)
			}
		}
		t.keywords[strings.ToLower(region)] = clean
		t.names = append(t.names, region)
	}
	sort.Strings(t.names)
	return t
}

// LoadRegions reads a region table from a YAML file of the form
// `regions: {<name>: [keyword, ...]}`. An empty path returns the defaults.
func LoadRegions(path string) (*RegionTable, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRegions(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var file struct {
		Regions map[string][]string `yaml:"regions"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode regions file: %w", err)
	}
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s contains no regions", path)
	}

	return newRegionTable(file.Regions), nil
}

// Keywords returns the keyword list for a region, or nil when the region
// is unknown. Callers fall back to the region name itself for queries.
func (t *RegionTable) Keywords(region string) []string {
	if t == nil {
		return nil
	}
	return t.keywords[strings.ToLower(strings.TrimSpace(region))]
}

// Names returns all configured region names in their declared casing,
// sorted.
func (t *RegionTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
