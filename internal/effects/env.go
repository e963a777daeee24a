package effects

import (
	"os"
	"strconv"
)

// Env holds the deterministic-execution configuration loaded from
// process environment variables, grounded on the teacher's EffEnv
// (internal/effects/context.go) but renamed to Lx's own variable
// prefix.
type Env struct {
	Seed         int64    // LX_SEED: seed for reproducible randomness and scheduling
	TZ           string   // TZ: timezone for deterministic time operations
	Locale       string   // LANG: locale for str.to_upper/to_lower
	Sandbox      bool     // LX_SANDBOX=1: disables real network/time.sleep_ms for hermetic test/property runs
	Args         []string // program arguments, as passed to `lx run`
	FixedClockMS int64    // LX_FIXED_CLOCK_MS: if nonzero, time.now_unix_ms returns this instead of wall time
}

// LoadEnv reads Env from the process environment, with the same
// defaults as the teacher's loadEffEnv.
func LoadEnv(args []string) Env {
	seed := int64(0)
	if s := os.Getenv("LX_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = v
		}
	}
	var fixedClock int64
	if s := os.Getenv("LX_FIXED_CLOCK_MS"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			fixedClock = v
		}
	}
	return Env{
		Seed:         seed,
		TZ:           getenv("TZ", "UTC"),
		Locale:       getenv("LANG", "C"),
		Sandbox:      os.Getenv("LX_SANDBOX") == "1",
		Args:         args,
		FixedClockMS: fixedClock,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
