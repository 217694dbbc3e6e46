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

	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson plan form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := setup(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		srvCfg := web.DefaultConfig()
		srvCfg.Host = rt.cfg.Server.Host
		srvCfg.Port = rt.cfg.Server.Port
		srvCfg.ReadTimeout = rt.cfg.Server.ReadTimeout
		srvCfg.WriteTimeout = rt.cfg.Server.WriteTimeout
		if cmd.Flags().Changed("host") {
			srvCfg.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			srvCfg.Port, _ = cmd.Flags().GetInt("port")
		}

		srv, err := web.New(srvCfg, web.Dependencies{
			Generator:  rt.service,
			Controller: flow.New(),
			Configured: rt.configured,
			Version:    version,
		}, rt.logger)
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		rt.logger.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides config)")
}
