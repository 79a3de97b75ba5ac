package grid

import (
	"sort"

	"github.com/rotisserie/eris"
)

// presets are the named ring density configurations. Point counts are
// non-decreasing with radius: outer rings have more circumference to cover,
// so they get denser sampling.
var presets = map[string][]RingConfig{
	"default": {
		{RadiusM: 500, PointCount: 6},
		{RadiusM: 1000, PointCount: 8},
		{RadiusM: 1500, PointCount: 10},
		{RadiusM: 2000, PointCount: 12},
		{RadiusM: 2500, PointCount: 14},
		{RadiusM: 3000, PointCount: 16},
		{RadiusM: 3500, PointCount: 18},
	},
	"dense": {
		{RadiusM: 250, PointCount: 8},
		{RadiusM: 625, PointCount: 12},
		{RadiusM: 1000, PointCount: 16},
		{RadiusM: 1375, PointCount: 20},
		{RadiusM: 1750, PointCount: 24},
		{RadiusM: 2125, PointCount: 28},
		{RadiusM: 2500, PointCount: 32},
	},
	"wide": {
		{RadiusM: 1000, PointCount: 6},
		{RadiusM: 2500, PointCount: 8},
		{RadiusM: 5000, PointCount: 10},
		{RadiusM: 7500, PointCount: 12},
		{RadiusM: 10000, PointCount: 14},
		{RadiusM: 12500, PointCount: 16},
		{RadiusM: 15000, PointCount: 18},
	},
}

// Preset returns a copy of the named ring configuration.
func Preset(name string) ([]RingConfig, error) {
	rings, ok := presets[name]
	if !ok {
		return nil, eris.Errorf("grid: unknown preset %q (have: %v)", name, PresetNames())
	}
	out := make([]RingConfig, len(rings))
	copy(out, rings)
	return out, nil
}

// PresetNames lists the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
