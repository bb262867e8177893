package summary

import "errors"

// Config bounds the requested summary length.
type Config struct {
	// LengthMin, LengthDefault and LengthMax bound the per-request maximum
	// summary length in characters. A request of 0 is replaced by
	// LengthDefault; anything outside [LengthMin, LengthMax] is rejected.
	LengthMin     int
	LengthDefault int
	LengthMax     int
}

// DefaultConfig returns the standard summary configuration.
func DefaultConfig() *Config {
	return &Config{
		LengthMin:     50,
		LengthDefault: 200,
		LengthMax:     500,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.LengthMin < 1 {
		return errors.New("summary config: LengthMin must be at least 1")
	}
	if c.LengthMax < c.LengthMin {
		return errors.New("summary config: LengthMax must be >= LengthMin")
	}
	if c.LengthDefault < c.LengthMin || c.LengthDefault > c.LengthMax {
		return errors.New("summary config: LengthDefault must be within [LengthMin, LengthMax]")
	}
	return nil
}
