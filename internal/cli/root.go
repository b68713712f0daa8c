package cli

import (
	"github.com/spf13/cobra"

	"task-management/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader

	flagAddr      string
	flagDBDir     string
	flagDBFile    string
	flagJWTSecret string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{
		loader: config.NewLoader(),
	}

	root.cmd = &cobra.Command{
		Use:   "taskserver",
		Short: "A task management API server",
		Long: `Task Management Server exposes a JSON API for per-user task tracking.

FEATURES:
  • Account registration and login with signed session tokens
  • Owner-scoped task creation, updates, completion and deletion
  • Filtered, paginated task listings with free-text search
  • Overdue and by-status task views

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Server Configuration:
    TM_SERVER_ADDR                         Listen address (default: :8080)
    TM_SERVER_READ_TIMEOUT                 Read timeout (default: 15s)
    TM_SERVER_WRITE_TIMEOUT                Write timeout (default: 15s)
    TM_SERVER_SHUTDOWN_TIMEOUT             Graceful shutdown timeout (default: 10s)

  Database Configuration:
    TM_DB_DIR                              Database directory (default: ~/.taskmanagement)
    TM_DB_FILENAME                         Database filename (default: taskmanagement.db)

  Session Token Configuration:
    TM_JWT_SECRET                          Signing secret, at least 32 bytes
    TM_JWT_ISSUER                          Token issuer (default: TaskManagement)
    TM_JWT_AUDIENCE                        Token audience (default: TaskManagementUsers)
    TM_JWT_TTL                             Token lifetime (default: 24h)

  Auth Configuration:
    TM_AUTH_BCRYPT_COST                    Password hashing cost (default: 10)

GETTING HELP:
  taskserver [command] --help              # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.cmd.AddCommand(root.newServeCommand())

	return root
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.StringVar(&r.flagAddr, "addr", "", "listen address (overrides TM_SERVER_ADDR)")
	flags.StringVar(&r.flagDBDir, "db-dir", "", "database directory (overrides TM_DB_DIR)")
	flags.StringVar(&r.flagDBFile, "db-filename", "", "database filename (overrides TM_DB_FILENAME)")
	flags.StringVar(&r.flagJWTSecret, "jwt-secret", "", "token signing secret (overrides TM_JWT_SECRET)")
}

// loadConfig resolves the effective configuration from defaults,
// environment and flags.
func (r *RootCommand) loadConfig() (*config.Config, error) {
	overrides := &config.Overrides{}
	if r.flagAddr != "" {
		overrides.Addr = &r.flagAddr
	}
	if r.flagDBDir != "" {
		overrides.DBDir = &r.flagDBDir
	}
	if r.flagDBFile != "" {
		overrides.DBFilename = &r.flagDBFile
	}
	if r.flagJWTSecret != "" {
		overrides.JWTSecret = &r.flagJWTSecret
	}
	return r.loader.LoadWithOverrides(overrides)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}
