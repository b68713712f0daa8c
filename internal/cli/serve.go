package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-management/internal/auth"
	"task-management/internal/config"
	"task-management/internal/repository/sqlite"
	"task-management/internal/server"
	"task-management/internal/services"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return err
	}

	repo, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		return err
	}
	defer repo.Close()

	if cfg.UsingDefaultSecret() {
		log.Println("WARNING: using the built-in token signing secret; set TM_JWT_SECRET in production")
	}

	tokens := auth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	log.Printf("session tokens valid for %s", tokens.TTL())
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService := services.NewUserService(repo, hasher, tokens)
	taskService := services.NewTaskService(repo)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(userService, taskService, tokens).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
