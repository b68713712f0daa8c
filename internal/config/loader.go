package config

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// Overrides holds command line flag overrides
type Overrides struct {
	Addr       *string
	DBDir      *string
	DBFilename *string
	JWTSecret  *string
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *Overrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		if overrides.Addr != nil {
			config.Server.Addr = *overrides.Addr
		}
		if overrides.DBDir != nil {
			config.Database.Dir = *overrides.DBDir
		}
		if overrides.DBFilename != nil {
			config.Database.Filename = *overrides.DBFilename
		}
		if overrides.JWTSecret != nil {
			config.JWT.Secret = *overrides.JWTSecret
		}
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
