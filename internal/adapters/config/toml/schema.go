package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

var ErrConfigExists = errors.New("config file already exists")

type fileSchema struct {
	Ledger  ledgerSchema  `toml:"ledger"`
	Wallet  walletSchema  `toml:"wallet"`
	Tx      txSchema      `toml:"tx"`
	Display displaySchema `toml:"display"`
	Metrics metricsSchema `toml:"metrics"`
	Log     logSchema     `toml:"log"`
}

type ledgerSchema struct {
	RPCURL          string `toml:"rpc_url"`
	ContractAddress string `toml:"contract_address"`
}

type walletSchema struct {
	RPCURL         string `toml:"rpc_url"`
	FallbackToNode bool   `toml:"fallback_to_node"`
}

type txSchema struct {
	GasLimit       uint64 `toml:"gas_limit"`
	ConfirmTimeout string `toml:"confirm_timeout"`
	PollInterval   string `toml:"poll_interval"`
}

type displaySchema struct {
	Timezone string `toml:"timezone"`
}

type metricsSchema struct {
	ListenAddr string `toml:"listen_addr"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

func toSchema(cfg Config) fileSchema {
	return fileSchema{
		Ledger: ledgerSchema{RPCURL: cfg.Ledger.RPCURL, ContractAddress: cfg.Ledger.ContractAddress},
		Wallet: walletSchema{RPCURL: cfg.Wallet.RPCURL, FallbackToNode: cfg.Wallet.FallbackToNode},
		Tx: txSchema{
			GasLimit:       cfg.Tx.GasLimit,
			ConfirmTimeout: cfg.Tx.ConfirmTimeout.String(),
			PollInterval:   cfg.Tx.PollInterval.String(),
		},
		Display: displaySchema{Timezone: cfg.Display.Timezone},
		Metrics: metricsSchema{ListenAddr: cfg.Metrics.ListenAddr},
		Log:     logSchema{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File},
	}
}

// Encode renders cfg in the on-disk TOML layout.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config file: %w", err)
	}

	return data, nil
}

// Write stores cfg at cfg.Path, replacing the file atomically. An existing
// file is kept unless force is set.
func Write(cfg Config, force bool) error {
	if cfg.Path == "" {
		return errors.New("config path is empty")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(cfg.Path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, cfg.Path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	return writeFile(cfg.Path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false

	return nil
}
