package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/coderev/internal/config"
	"github.com/dshills/coderev/internal/providers"
	"github.com/dshills/coderev/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review pipeline over HTTP",
	Long: `Serve exposes the review pipeline as a JSON API:

  GET  /health
  GET  /api/v1/languages
  POST /api/v1/review            JSON request, JSON report
  POST /api/v1/review/markdown   JSON request, Markdown attachment`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["server.addr"] = flagAddr
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		log := newLogger(cmd, cfg)

		completer, err := providers.New(cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = providerExitCode(err)
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.NewServer(cfg, completer, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return nil
		case <-ctx.Done():
		}

		if err := srv.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: shutdown: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider")
	serveCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
}
