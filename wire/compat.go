package wire

import (
	"os"
	"strconv"
)

const defaultInitialCapacity = 16

// Config controls optional cursor behaviors. Defaults match the reference
// wire behavior: a 16 byte starting buffer and lossy UTF-8 decoding.
type Config struct {
	// InitialCapacity is the buffer size a write cursor starts with when no
	// size is given. It doubles from there on demand.
	InitialCapacity int

	// StrictUTF8: when true, ReadString fails with ErrMalformedUTF8 on invalid
	// byte sequences. When false (default), each offending byte decodes to
	// U+FFFD and the read continues.
	StrictUTF8 bool
}

var config = Config{
	InitialCapacity: defaultInitialCapacity,
}

// SetConfig sets the global wire configuration. Cursors snapshot it when
// they are created, so call it before starting work.
func SetConfig(c Config) {
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = defaultInitialCapacity
	}
	config = c
}

// CurrentConfig returns the active global configuration.
func CurrentConfig() Config { return config }

func init() {
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v := os.Getenv("PBF_INITIAL_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.InitialCapacity = n
		}
	}
	if v := os.Getenv("PBF_STRICT_UTF8"); v == "1" || v == "true" {
		config.StrictUTF8 = true
	}
}
