package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yanqian/trafficai/internal/infra/config"
	"github.com/yanqian/trafficai/internal/infra/page"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trafficai",
	Short: "Smart traffic dashboard with simulated live data",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			os.Setenv("CONFIG_PATH", cfgFile)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard controller and HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var checkPageCmd = &cobra.Command{
	Use:   "check-page",
	Short: "Validate the page layout against the controller bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		layout, err := page.LoadLayout(cfg.Dashboard.LayoutPath)
		if err != nil {
			return err
		}
		if err := layout.Validate(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "page ok: %d ids, %d anchors, %d alert options\n",
			len(layout.IDs), len(layout.Anchors), len(layout.AlertOptions))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/config.yaml)")
	rootCmd.AddCommand(serveCmd, checkPageCmd)
}

func serve(ctx context.Context) error {
	app, cleanup, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()
	return app.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
