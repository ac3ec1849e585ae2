package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/server"
	"github.com/hb-chen/safeskill/pkg/logger"
)

var (
	addrHTTP, addrGrpc string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		router, err := newRouter(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("Shutting down...")
		}()

		if err := server.Serve(ctx, cfg, router); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrHTTP, "addr-http", "", "HTTP server address (overrides config file)")
	serveCmd.Flags().StringVar(&addrGrpc, "addr-grpc", "", "gRPC server address (overrides config file)")

	_ = config.Viper().BindPFlag("server.http.addr", serveCmd.Flags().Lookup("addr-http"))
	_ = config.Viper().BindPFlag("server.grpc.addr", serveCmd.Flags().Lookup("addr-grpc"))

	rootCmd.AddCommand(serveCmd)
}
