package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/reels-cli/internal/fixture"
)

type options struct {
	addr     string
	seedPath string
	count    int
	token    string
	viewerID string
	quiet    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "reels-fixture",
		Short: "Serve a development reels backend",
		Long: `Serve the reels API from an in-memory catalogue.

Reels come from a JSON seed file or a generated catalogue. The API lives
under /api, so the client default base URL http://localhost:8080/api works
without configuration.

Example:
  reels-fixture --addr :8080 --count 60
  reels-fixture --seed ./reels.json --token dev`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.seedPath, "seed", "", "JSON file with reels to serve")
	cmd.Flags().IntVar(&opts.count, "count", 60, "number of generated reels when no seed file is given")
	cmd.Flags().StringVar(&opts.token, "token", "", "require this bearer token")
	cmd.Flags().StringVar(&opts.viewerID, "viewer", "u-viewer", "user id mutations are attributed to")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "disable request logging")
	return cmd
}

func serve(ctx context.Context, opts *options) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		records []fixture.Record
		err     error
	)
	if opts.seedPath != "" {
		records, err = fixture.LoadFile(opts.seedPath)
		if err != nil {
			return err
		}
	} else {
		if opts.count < 1 {
			return fmt.Errorf("count must be positive: %d", opts.count)
		}
		records = fixture.Generate(opts.count, time.Now().UTC())
	}

	srv := fixture.New(records, fixture.Options{
		Token:      opts.token,
		ViewerID:   opts.viewerID,
		RequestLog: !opts.quiet,
		Logger:     logger,
	})
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving reels", "addr", opts.addr, "reels", len(records))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
