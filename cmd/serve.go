package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/api"
	"github.com/manav03panchal/choreboard/internal/logging"
)

var serveFlagAddr string

// serveCmd runs the REST API.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Run the REST API server",
	Long: `Run the REST API used by the web client. The server stops gracefully on
SIGINT or SIGTERM.

Examples:
  choreboard serve
  choreboard serve --addr :8080
  choreboard serve --store sqlite --db ./chores.sqlite
  PORT=3001 choreboard serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (default from config, :3001)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := ctx.Store(sigCtx)
	if err != nil {
		return err
	}

	cfg := ctx.Config
	addr := cfg.Server.Addr
	if serveFlagAddr != "" {
		addr = serveFlagAddr
	}

	storeOpts := cfg.StoreOptions()
	logging.Info("starting server",
		"addr", addr,
		"store", storeOpts.Driver,
		"dsn", logging.MaskDSN(storeOpts.DSN),
		"version", Version)

	srv := api.NewServer(store, api.Options{
		Addr:            addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
		DefaultTypes:    cfg.Tasks.DefaultTypes,
		Driver:          string(storeOpts.Driver),
		Now:             ctx.Parser.Now,
	})
	if err := srv.Run(sigCtx); err != nil {
		return err
	}
	logging.Info("server stopped")
	return nil
}
