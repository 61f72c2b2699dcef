package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"forgeauth/internal/app"
	"forgeauth/internal/bridge"
	"forgeauth/internal/metrics"
	identitysvc "forgeauth/internal/services/identity"
	"forgeauth/internal/store"
	"forgeauth/internal/wallet/keyring"
)

type options struct {
	home        string
	configPath  string
	passphrase  string
	listen      string
	rps         float64
	burst       int
	autoApprove bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "walletd",
		Short:        "Local Phantom-compatible wallet bridge",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.passphrase == "" {
				o.passphrase = os.Getenv("FORGE_PASSPHRASE")
			}
			return run(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.home, "home", "", "config dir (default ~/.forgeauth)")
	cmd.Flags().StringVar(&o.configPath, "config", "", "config file (default <home>/config.yaml)")
	cmd.Flags().StringVarP(&o.passphrase, "passphrase", "p", "", "keystore passphrase (or FORGE_PASSPHRASE)")
	cmd.Flags().StringVar(&o.listen, "listen", "127.0.0.1:8787", "listen address")
	cmd.Flags().Float64Var(&o.rps, "rate", 1, "connect/sign requests per second")
	cmd.Flags().IntVar(&o.burst, "burst", 5, "request burst size")
	cmd.Flags().BoolVar(&o.autoApprove, "auto-approve", false, "approve every prompt (testing only)")
	return cmd
}

func run(ctx context.Context, o options) error {
	if o.home == "" {
		o.home = app.DefaultHome()
	}
	if o.configPath == "" {
		o.configPath = filepath.Join(o.home, "config.yaml")
	}
	cfg, err := app.LoadConfig(o.home, o.configPath)
	if err != nil {
		return err
	}
	log, err := app.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	if o.passphrase == "" {
		return errors.New("passphrase required (-p or FORGE_PASSPHRASE)")
	}
	key, err := identitysvc.New(store.NewKeystoreFile(cfg.KeystorePath())).Load(o.passphrase)
	if err != nil {
		return fmt.Errorf("load keystore %s: %w", cfg.KeystorePath(), err)
	}

	var approve keyring.Approver
	if o.autoApprove {
		log.Warn("auto-approve enabled; every connect and sign request will be granted")
		approve = keyring.AutoApprove
	} else {
		approve = newTerminalApprover(os.Stdin, os.Stdout).Approve
	}
	k := keyring.New(key.Seed, approve)
	key.Wipe()

	srv := newServer(o.listen, k, rate.NewLimiter(rate.Limit(o.rps), o.burst), log)
	log.Info("walletd listening", "addr", o.listen, "identity", k.Identity().Base58())
	return serve(ctx, srv, log)
}

func newServer(addr string, k *keyring.Keyring, limiter *rate.Limiter, log *slog.Logger) *http.Server {
	b := bridge.New(k,
		bridge.WithLimiter(limiter),
		bridge.WithLogger(log),
		bridge.WithMetrics(metrics.Session()),
	)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", b.Routes())

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("walletd shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
