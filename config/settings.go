package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tranvictor/circles-groups/common"
)

const (
	RPCURLVar            = "CIRCLES_RPC_URL"
	IndexerURLVar        = "CIRCLES_INDEXER_URL"
	ProfileServiceURLVar = "CIRCLES_PROFILE_SERVICE_URL"

	DefaultNetwork      = "gnosis"
	DefaultIndexingWait = 15 * time.Second
)

// Duration decodes TOML strings like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type NetworkSettings struct {
	Name              string `toml:"name"`
	RPCURL            string `toml:"rpc_url"`
	ChainID           uint64 `toml:"chain_id"`
	IndexerURL        string `toml:"indexer_url"`
	ProfileServiceURL string `toml:"profile_service_url"`
}

type WalletSettings struct {
	Address  string `toml:"address"`
	Keystore string `toml:"keystore"`
}

type TimingSettings struct {
	IndexingWait Duration `toml:"indexing_wait"`
}

// Settings is the content of config.toml. Empty fields fall back to the
// selected network's defaults.
type Settings struct {
	Network NetworkSettings `toml:"network"`
	Wallet  WalletSettings  `toml:"wallet"`
	Timing  TimingSettings  `toml:"timing"`
}

// Dir is where settings, keystores and the group book live.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".circles-groups"
	}
	return filepath.Join(home, ".circles-groups")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// ResolvePath returns the explicit --config value or the default location.
func ResolvePath() string {
	if strings.TrimSpace(ConfigPath) != "" {
		return ConfigPath
	}
	return DefaultPath()
}

// Load reads settings from path. A missing file yields empty settings so
// read-only commands work before setup. Env overrides are applied last.
func Load(path string) (Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	s.trim()
	s.applyEnv()
	return s, nil
}

func (s *Settings) trim() {
	s.Network.Name = strings.TrimSpace(s.Network.Name)
	s.Network.RPCURL = strings.TrimSpace(s.Network.RPCURL)
	s.Network.IndexerURL = strings.TrimSpace(s.Network.IndexerURL)
	s.Network.ProfileServiceURL = strings.TrimSpace(s.Network.ProfileServiceURL)
	s.Wallet.Address = strings.TrimSpace(s.Wallet.Address)
	s.Wallet.Keystore = strings.TrimSpace(s.Wallet.Keystore)
}

func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(RPCURLVar)); v != "" {
		s.Network.RPCURL = v
	}
	if v := strings.TrimSpace(os.Getenv(IndexerURLVar)); v != "" {
		s.Network.IndexerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(ProfileServiceURLVar)); v != "" {
		s.Network.ProfileServiceURL = v
	}
}

// IndexingWait is the configured delay before resolving a new group.
func (s Settings) IndexingWait() time.Duration {
	if s.Timing.IndexingWait.Duration > 0 {
		return s.Timing.IndexingWait.Duration
	}
	return DefaultIndexingWait
}

// HasWallet reports whether setup has stored a wallet.
func (s Settings) HasWallet() bool {
	return s.Wallet.Address != "" && s.Wallet.Keystore != ""
}

// Validate checks every field that is set. Empty fields are valid since
// they fall back to network defaults.
func (s Settings) Validate() error {
	var errs []error
	for name, raw := range map[string]string{
		"network.rpc_url":             s.Network.RPCURL,
		"network.indexer_url":         s.Network.IndexerURL,
		"network.profile_service_url": s.Network.ProfileServiceURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an http(s) or ws(s) url", name, raw))
		}
	}
	if s.Wallet.Address != "" && !common.IsAddress(s.Wallet.Address) {
		errs = append(errs, fmt.Errorf("wallet.address: %q is not a valid address", s.Wallet.Address))
	}
	if s.Timing.IndexingWait.Duration < 0 {
		errs = append(errs, fmt.Errorf("timing.indexing_wait must not be negative"))
	}
	return errors.Join(errs...)
}

// Save writes settings to path, creating the parent directory.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("couldn't create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("couldn't open config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("couldn't write config %s: %w", path, err)
	}
	return nil
}
