package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".waveportal"
	envPrefix  = "WP"

	DefaultContractAddress = "0x3a038C3142Ae572273dfC245DAb0E1881D4D3d08"
	defaultLogFile         = "wp.log"
)

const (
	keyLedgerRPCURL      = "ledger.rpc_url"
	keyContractAddress   = "ledger.contract_address"
	keyWalletRPCURL      = "wallet.rpc_url"
	keyWalletFallback    = "wallet.fallback_to_node"
	keyGasLimit          = "tx.gas_limit"
	keyConfirmTimeout    = "tx.confirm_timeout"
	keyPollInterval      = "tx.poll_interval"
	keyDisplayTimezone   = "display.timezone"
	keyMetricsListenAddr = "metrics.listen_addr"
	keyLogLevel          = "log.level"
	keyLogFormat         = "log.format"
	keyLogFile           = "log.file"
)

type Config struct {
	Ledger  LedgerConfig
	Wallet  WalletConfig
	Tx      TxConfig
	Display DisplayConfig
	Metrics MetricsConfig
	Log     LogConfig

	// Path is the file the config was read from, or would be written to.
	Path string
}

type LedgerConfig struct {
	RPCURL          string
	ContractAddress string
}

type WalletConfig struct {
	RPCURL         string
	FallbackToNode bool
}

type TxConfig struct {
	GasLimit       uint64
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

type DisplayConfig struct {
	Timezone string
}

type MetricsConfig struct {
	ListenAddr string
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

func Defaults() Config {
	return Config{
		Ledger: LedgerConfig{
			RPCURL:          "ws://127.0.0.1:8545",
			ContractAddress: DefaultContractAddress,
		},
		Tx: TxConfig{
			GasLimit:       domain.DefaultGasLimit,
			ConfirmTimeout: 5 * time.Minute,
			PollInterval:   2 * time.Second,
		},
		Display: DisplayConfig{Timezone: "UTC"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath is ~/.waveportal/config.toml.
func DefaultPath() (string, error) {
	dir, err := defaultDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configName+"."+configType), nil
}

func defaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir), nil
}

// Load reads the config file, then WP_* environment overrides, on top of the
// defaults. A missing file is not an error. An empty path means the default
// location.
func Load(cfg *viper.Viper, path string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	setDefaults(cfg)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.SetConfigFile(path)
	cfg.SetConfigType(configType)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		Ledger: LedgerConfig{
			RPCURL:          strings.TrimSpace(cfg.GetString(keyLedgerRPCURL)),
			ContractAddress: strings.TrimSpace(cfg.GetString(keyContractAddress)),
		},
		Wallet: WalletConfig{
			RPCURL:         strings.TrimSpace(cfg.GetString(keyWalletRPCURL)),
			FallbackToNode: cfg.GetBool(keyWalletFallback),
		},
		Tx: TxConfig{
			GasLimit:       cfg.GetUint64(keyGasLimit),
			ConfirmTimeout: cfg.GetDuration(keyConfirmTimeout),
			PollInterval:   cfg.GetDuration(keyPollInterval),
		},
		Display: DisplayConfig{Timezone: strings.TrimSpace(cfg.GetString(keyDisplayTimezone))},
		Metrics: MetricsConfig{ListenAddr: strings.TrimSpace(cfg.GetString(keyMetricsListenAddr))},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(cfg.GetString(keyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(cfg.GetString(keyLogFormat))),
			File:   strings.TrimSpace(cfg.GetString(keyLogFile)),
		},
		Path: path,
	}

	if err := loaded.Validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func setDefaults(cfg *viper.Viper) {
	defaults := Defaults()
	cfg.SetDefault(keyLedgerRPCURL, defaults.Ledger.RPCURL)
	cfg.SetDefault(keyContractAddress, defaults.Ledger.ContractAddress)
	cfg.SetDefault(keyWalletRPCURL, defaults.Wallet.RPCURL)
	cfg.SetDefault(keyWalletFallback, defaults.Wallet.FallbackToNode)
	cfg.SetDefault(keyGasLimit, defaults.Tx.GasLimit)
	cfg.SetDefault(keyConfirmTimeout, defaults.Tx.ConfirmTimeout)
	cfg.SetDefault(keyPollInterval, defaults.Tx.PollInterval)
	cfg.SetDefault(keyDisplayTimezone, defaults.Display.Timezone)
	cfg.SetDefault(keyMetricsListenAddr, defaults.Metrics.ListenAddr)
	cfg.SetDefault(keyLogLevel, defaults.Log.Level)
	cfg.SetDefault(keyLogFormat, defaults.Log.Format)
	cfg.SetDefault(keyLogFile, defaults.Log.File)
}

func (c Config) Validate() error {
	var errs []error

	if c.Ledger.RPCURL == "" {
		errs = append(errs, fmt.Errorf("%s is empty", keyLedgerRPCURL))
	}
	if !common.IsHexAddress(c.Ledger.ContractAddress) {
		errs = append(errs, fmt.Errorf("%s %q is not a hex address", keyContractAddress, c.Ledger.ContractAddress))
	}
	if c.Tx.GasLimit == 0 {
		errs = append(errs, fmt.Errorf("%s must be greater than 0", keyGasLimit))
	}
	if c.Tx.ConfirmTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", keyConfirmTimeout))
	}
	if c.Tx.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", keyPollInterval))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%s %q is not one of debug, info, warn, error", keyLogLevel, c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%s %q is not one of text, json", keyLogFormat, c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Location resolves display.timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", keyDisplayTimezone, c.Display.Timezone, err)
	}

	return loc, nil
}

// LogFile is the log destination for long-running screens: log.file, or
// wp.log next to the config file.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}

	return filepath.Join(filepath.Dir(c.Path), defaultLogFile)
}
