package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/openscan/vuln-manager/internal/config"
	"github.com/openscan/vuln-manager/internal/handlers"
	"github.com/openscan/vuln-manager/internal/server"
	"github.com/openscan/vuln-manager/internal/services"
	"github.com/openscan/vuln-manager/internal/store"
	"github.com/openscan/vuln-manager/internal/store/migrations"
)

const envPrefix = "VULNMGR"

// NewRunCommand builds the run command. Flags write straight into cfg;
// environment variables with the VULNMGR_ prefix fill in flags the command
// line left untouched.
func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the vulnerability management API server",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindEnvironment(cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "HTTP port to listen on")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode, dev or prod")
	flags.StringVar(&cfg.Database.Path, "db-path", cfg.Database.Path, "path to the DuckDB database file")
	flags.IntVar(&cfg.Listing.MaxRowsPerPage, "max-rows-per-page", cfg.Listing.MaxRowsPerPage, "row cap for one page of results")

	return cmd
}

// bindEnvironment applies VULNMGR_* environment variables to flags not set
// on the command line, so flags keep precedence over the environment.
func bindEnvironment(flags *pflag.FlagSet) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if value := viper.GetString(f.Name); value != "" {
			_ = flags.Set(f.Name, value)
		}
	})
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger, err := newLogger(cfg.Server.ServerMode)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	db, err := store.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.NewStore(db)
	defer func() { _ = st.Close() }()

	listing := services.NewListing(st, cfg.Listing.MaxRowsPerPage)
	handler := handlers.New(
		listing,
		services.NewFilters(st, listing),
		services.NewTags(st),
		services.NewSettings(st),
	)

	srv, err := server.NewServer(cfg, handler.RegisterRoutes)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(shutdownCtx)
	}()

	zap.S().Infow("server listening", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == server.ProductionServer {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
