package config

import (
	"strings"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

// ProfileFor returns the static profile for t with any configured override
// applied. The static table is never modified.
func (c Config) ProfileFor(t circuit.Tier) circuit.Profile {
	p := circuit.ProfileFor(t)
	o, ok := c.override(t)
	if !ok {
		return p
	}

	if o.Movable != nil {
		p.Movable = o.Movable.toRange()
	}
	if o.Corners != nil {
		p.Corners = o.Corners.toRange()
	}
	if o.ScrambleRatio != nil {
		p.ScrambleRatio = *o.ScrambleRatio
	}
	if o.GridSize != nil {
		p.GridSize = o.GridSize.toRange()
	}
	return p
}

// HasOverride reports whether the configuration changes t's profile.
func (c Config) HasOverride(t circuit.Tier) bool {
	_, ok := c.override(t)
	return ok
}

func (c Config) override(t circuit.Tier) (ProfileOverride, bool) {
	for name, o := range c.Profiles {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return o, true
		}
	}
	return ProfileOverride{}, false
}

func (r RangeConfig) toRange() circuit.Range {
	return circuit.Range{Min: r.Min, Max: r.Max}
}
