package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	configtoml "github.com/bnema/waveportal-cli/internal/adapters/config/toml"
	"github.com/bnema/waveportal-cli/internal/adapters/ledger/ethereum"
	promadapter "github.com/bnema/waveportal-cli/internal/adapters/metrics/prometheus"
	walletchain "github.com/bnema/waveportal-cli/internal/adapters/wallet/chain"
	walletrpc "github.com/bnema/waveportal-cli/internal/adapters/wallet/rpc"
	"github.com/bnema/waveportal-cli/internal/application"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	"github.com/spf13/viper"
)

const metricsShutdownTimeout = 2 * time.Second

type app struct {
	cfg      configtoml.Config
	logger   *slog.Logger
	wallet   ports.WalletAgent
	ledgers  ports.LedgerFactory
	metrics  ports.Metrics
	location *time.Location
	closers  []func()
}

func loadConfig(opts *rootOptions) (configtoml.Config, error) {
	cfg, err := configtoml.Load(viper.New(), opts.configPath)
	if err != nil {
		return configtoml.Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// wireApp loads the config and builds the adapters. Logs go to logOut.
func wireApp(opts *rootOptions, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	return wireAppWithConfig(cfg, logOut)
}

func wireAppWithConfig(cfg configtoml.Config, logOut io.Writer) (*app, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger := newLogger(logOut, cfg.Log)

	ledgers, err := ethereum.NewFactory(ethereum.Config{
		NodeURL:         cfg.Ledger.RPCURL,
		WalletURL:       cfg.Wallet.RPCURL,
		FallbackToNode:  cfg.Wallet.FallbackToNode,
		ContractAddress: cfg.Ledger.ContractAddress,
		PollInterval:    cfg.Tx.PollInterval,
		Logger:          logger.With("component", "ledger"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire ledger factory: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		ledgers:  ledgers,
		metrics:  ports.NopMetrics{},
		location: location,
	}

	a.wallet, err = a.wireWallet()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("wire wallet agent: %w", err)
	}

	if cfg.Metrics.ListenAddr != "" {
		a.serveMetrics(cfg.Metrics.ListenAddr)
	}

	return a, nil
}

func (a *app) wireWallet() (ports.WalletAgent, error) {
	var primary ports.WalletAgent = walletchain.Absent{}
	if a.cfg.Wallet.RPCURL != "" {
		agent := walletrpc.NewAgent(a.cfg.Wallet.RPCURL)
		a.closers = append(a.closers, agent.Close)
		primary = agent
	}

	if !a.cfg.Wallet.FallbackToNode {
		return primary, nil
	}

	node := walletrpc.NewNodeAgent(a.cfg.Ledger.RPCURL)
	a.closers = append(a.closers, node.Close)

	return walletchain.NewAgent(primary, node)
}

func (a *app) serveMetrics(addr string) {
	recorder := promadapter.NewRecorder()
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("metrics server stopped", "addr", addr, "err", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", addr)

	a.metrics = recorder
	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
}

func (a *app) newPortal(notifier ports.Notifier) *application.Portal {
	return application.NewPortal(application.PortalDeps{
		Wallet:   a.wallet,
		Ledgers:  a.ledgers,
		Notifier: notifier,
		Metrics:  a.metrics,
		Clock:    ports.SystemClock{},
		Logger:   a.logger,
	}, application.PortalConfig{
		Submit:         domain.SubmitOptions{GasLimit: a.cfg.Tx.GasLimit},
		ConfirmTimeout: a.cfg.Tx.ConfirmTimeout,
		Location:       a.location,
	})
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
