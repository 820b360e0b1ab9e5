package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", server.DefaultAddress, "address to listen on")
	serveCmd.Flags().Int64("max-upload-bytes", server.DefaultMaxUploadBytes, "largest accepted upload in bytes")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("server.max-upload-bytes", serveCmd.Flags().Lookup("max-upload-bytes"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config.Server == nil {
		logger.Fatal("server config is required")
	}

	p, err := newParser(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the parser", zap.Error(err), zap.String("hint", geminiKeyHint))
	}
	defer p.Close()

	srv := server.New(server.Config{
		Address:        config.Server.Address,
		MaxUploadBytes: config.Server.MaxUploadBytes,
	}, p, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting the server", zap.String("version", version), zap.String("address", config.Server.Address))
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	logger.Info("shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutting down the server", zap.Error(err))
	}
}
