package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lacquerai/heartbeat/internal/execcontext"
	"github.com/lacquerai/heartbeat/internal/heartbeat"
	"github.com/lacquerai/heartbeat/internal/sample"
	"github.com/lacquerai/heartbeat/internal/server"
	"github.com/lacquerai/heartbeat/internal/style"
)

// newSource is swapped in tests for a deterministic source.
var newSource = sample.NewSource

func runHeartbeat(cmd *cobra.Command, args []string) error {
	runCtx := execcontext.RunContext{
		Context: cmd.Context(),
		StdOut:  cmd.OutOrStdout(),
		StdErr:  cmd.ErrOrStderr(),
	}

	cfg := heartbeat.Config{
		Interval: viper.GetDuration("interval"),
		Count:    viper.GetInt("count"),
	}

	opts := []heartbeat.Option{
		heartbeat.WithSource(newSource()),
		heartbeat.WithLogger(log.With().Str("component", "heartbeat").Logger()),
	}

	if viper.GetBool("progress") {
		opts = append(opts, heartbeat.WithIndicator(style.NewSpinner(runCtx.StdErr)))
	}

	if addr := viper.GetString("metrics-addr"); addr != "" {
		srv, err := startServer(runCtx, addr)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(ctx); err != nil {
				log.Error().Err(err).Msg("Server shutdown error")
				style.Error(runCtx.StdErr, fmt.Sprintf("Stopping server: %v", err))
			}
		}()
		opts = append(opts, heartbeat.WithObserver(srv.Observe))
	}

	driver, err := heartbeat.New(cfg, runCtx, opts...)
	if err != nil {
		return err
	}

	return driver.Run(runCtx.Context)
}

func startServer(runCtx execcontext.RunContext, addr string) (*server.Server, error) {
	config := server.DefaultConfig()
	config.Addr = addr

	srv, err := server.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("starting server: %w", err)
	}

	if !viper.GetBool("quiet") {
		style.Success(runCtx.StdErr, fmt.Sprintf("Serving http://%s/metrics, /healthz and /ws", srv.Addr()))
	}

	return srv, nil
}
