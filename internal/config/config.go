package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultJWTSecret is the fallback signing secret used when TM_JWT_SECRET
// is unset. It exists so a fresh checkout runs, and it is an operational
// risk: any deployment reachable from a network must set its own secret.
const DefaultJWTSecret = "YourSuperSecretKeyThatIsAtLeast32CharactersLong!"

// Config holds all configuration options for the task management server
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"TM_SERVER_ADDR"`
	ReadTimeout     time.Duration `env:"TM_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"TM_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"TM_SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `env:"TM_DB_DIR"`
	Filename       string `env:"TM_DB_FILENAME"`
	DirPermissions uint32 `env:"TM_DB_DIR_PERMISSIONS"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret   string        `env:"TM_JWT_SECRET"`
	Issuer   string        `env:"TM_JWT_ISSUER"`
	Audience string        `env:"TM_JWT_AUDIENCE"`
	TTL      time.Duration `env:"TM_JWT_TTL"`
}

// AuthConfig holds credential hashing configuration
type AuthConfig struct {
	BcryptCost int `env:"TM_AUTH_BCRYPT_COST"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	UsernameMinLength    int `env:"TM_VALIDATION_USERNAME_MIN"`
	UsernameMaxLength    int `env:"TM_VALIDATION_USERNAME_MAX"`
	PasswordMinLength    int `env:"TM_VALIDATION_PASSWORD_MIN"`
	EmailMaxLength       int `env:"TM_VALIDATION_EMAIL_MAX"`
	NameMaxLength        int `env:"TM_VALIDATION_NAME_MAX"`
	TitleMaxLength       int `env:"TM_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"TM_VALIDATION_DESCRIPTION_MAX"`
	MaxPageSize          int `env:"TM_VALIDATION_MAX_PAGE_SIZE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskmanagement")

	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "taskmanagement.db",
			DirPermissions: 0755,
		},
		JWT: JWTConfig{
			Secret:   DefaultJWTSecret,
			Issuer:   "TaskManagement",
			Audience: "TaskManagementUsers",
			TTL:      24 * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
		Validation: ValidationConfig{
			UsernameMinLength:    3,
			UsernameMaxLength:    100,
			PasswordMinLength:    6,
			EmailMaxLength:       255,
			NameMaxLength:        100,
			TitleMaxLength:       200,
			DescriptionMaxLength: 1000,
			MaxPageSize:          100,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if addr := os.Getenv("TM_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TM_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("TM_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if timeout := os.Getenv("TM_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Database configuration
	if dir := os.Getenv("TM_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TM_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("TM_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// JWT configuration
	if secret := os.Getenv("TM_JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if issuer := os.Getenv("TM_JWT_ISSUER"); issuer != "" {
		c.JWT.Issuer = issuer
	}
	if audience := os.Getenv("TM_JWT_AUDIENCE"); audience != "" {
		c.JWT.Audience = audience
	}
	if ttl := os.Getenv("TM_JWT_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.JWT.TTL = d
		}
	}

	// Auth configuration
	if cost := os.Getenv("TM_AUTH_BCRYPT_COST"); cost != "" {
		if n, err := strconv.Atoi(cost); err == nil {
			c.Auth.BcryptCost = n
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TM_VALIDATION_USERNAME_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.UsernameMinLength = n
		}
	}
	if maxLen := os.Getenv("TM_VALIDATION_USERNAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.UsernameMaxLength = n
		}
	}
	if minLen := os.Getenv("TM_VALIDATION_PASSWORD_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.PasswordMinLength = n
		}
	}
	if maxSize := os.Getenv("TM_VALIDATION_MAX_PAGE_SIZE"); maxSize != "" {
		if n, err := strconv.Atoi(maxSize); err == nil {
			c.Validation.MaxPageSize = n
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if len(c.JWT.Secret) < 32 {
		return &ConfigError{Field: "jwt.secret", Message: "signing secret must be at least 32 bytes"}
	}
	if c.JWT.Issuer == "" {
		return &ConfigError{Field: "jwt.issuer", Message: "issuer cannot be empty"}
	}
	if c.JWT.Audience == "" {
		return &ConfigError{Field: "jwt.audience", Message: "audience cannot be empty"}
	}
	if c.JWT.TTL <= 0 {
		return &ConfigError{Field: "jwt.ttl", Message: "token lifetime must be positive"}
	}
	if c.Validation.UsernameMinLength < 1 {
		return &ConfigError{Field: "validation.username_min_length", Message: "username minimum length must be at least 1"}
	}
	if c.Validation.UsernameMaxLength < c.Validation.UsernameMinLength {
		return &ConfigError{Field: "validation.username_max_length", Message: "username maximum length must be greater than minimum length"}
	}
	if c.Validation.PasswordMinLength < 1 {
		return &ConfigError{Field: "validation.password_min_length", Message: "password minimum length must be at least 1"}
	}
	if c.Validation.MaxPageSize < 1 {
		return &ConfigError{Field: "validation.max_page_size", Message: "max page size must be at least 1"}
	}

	return nil
}

// UsingDefaultSecret reports whether the insecure fallback signing secret
// is in use, so startup can log the operational risk.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
