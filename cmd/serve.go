package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Achintharya/eightfold-bot/pkg/config"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the research agent as an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDependencies()
		if err != nil {
			return err
		}
		defer logger.Close()

		cfg := config.Get()
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(deps),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http server listening on %s", addr)
			fmt.Printf("Listening on http://%s\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			logger.Info("received %s, shutting down", sig)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
