package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging and keep debug segments")
	flagSentinel  = flag.String("sentinel", "", "Unmarked vertex color (#RRGGBB)")
	flagMode      = flag.String("mode", "", "Path assembly mode: components or seed")
	flagTolerance = flag.Float64("tolerance", 0, "Endpoint matching tolerance (0 = exact)")
	flagWorkers   = flag.Int("workers", 0, "Regions processed concurrently")
	flagHeight    = flag.Float64("height", 0, "Ribbon collider height")
	flagNoRibbon  = flag.Bool("no-ribbon", false, "Skip ribbon collider generation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Extract.DebugSegments = true
	}
	if *flagSentinel != "" {
		cfg.Extract.Sentinel = *flagSentinel
	}
	if *flagMode != "" {
		cfg.Extract.Mode = *flagMode
	}
	if *flagTolerance > 0 {
		cfg.Extract.Tolerance = float32(*flagTolerance)
	}
	if *flagWorkers > 0 {
		cfg.Extract.Workers = *flagWorkers
	}
	if *flagHeight > 0 {
		cfg.Ribbon.Height = float32(*flagHeight)
	}
	if *flagNoRibbon {
		cfg.Ribbon.Enabled = false
	}
}
