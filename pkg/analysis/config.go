package analysis

// Config carries the tunables of one analysis run. Zero values are replaced
// by the defaults, so Config{} behaves like DefaultConfig().
type Config struct {
	// Buckets is the fixed-width histogram bucket count.
	Buckets int

	// TopN is the ranking size used by presentation layers.
	TopN int

	// CountWeight and CostWeight blend component count and relative cost
	// into the complexity score. They should sum to 1 to keep the score on
	// a 0-1 scale.
	CountWeight float64
	CostWeight  float64
}

// DefaultConfig returns the documented default tunables.
func DefaultConfig() Config {
	return Config{
		Buckets:     10,
		TopN:        10,
		CountWeight: 0.6,
		CostWeight:  0.4,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Buckets <= 0 {
		c.Buckets = d.Buckets
	}
	if c.TopN <= 0 {
		c.TopN = d.TopN
	}
	if c.CountWeight == 0 && c.CostWeight == 0 {
		c.CountWeight = d.CountWeight
		c.CostWeight = d.CostWeight
	}
	return c
}
