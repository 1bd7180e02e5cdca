package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tranvictor/circles-groups/config"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv(config.RPCURLVar, "")
	t.Setenv(config.IndexerURLVar, "")
	t.Setenv(config.ProfileServiceURLVar, "")

	s, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.HasWallet() {
		t.Fatalf("expected no wallet")
	}
	if s.IndexingWait() != config.DefaultIndexingWait {
		t.Fatalf("unexpected indexing wait: %s", s.IndexingWait())
	}
}

func TestLoadDecodesAllSections(t *testing.T) {
	t.Setenv(config.RPCURLVar, "")
	t.Setenv(config.IndexerURLVar, "")
	t.Setenv(config.ProfileServiceURLVar, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[network]
name = "gnosis"
rpc_url = " https://node.example "
indexer_url = "https://index.example/"

[wallet]
address = "0x1111111111111111111111111111111111111111"
keystore = "/tmp/key.json"

[timing]
indexing_wait = "3s"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Network.RPCURL != "https://node.example" {
		t.Fatalf("unexpected rpc url: %q", s.Network.RPCURL)
	}
	if !s.HasWallet() {
		t.Fatalf("expected wallet to be configured")
	}
	if s.IndexingWait() != 3*time.Second {
		t.Fatalf("unexpected indexing wait: %s", s.IndexingWait())
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[network]\nrpc_url = \"https://file.example\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.RPCURLVar, "https://env.example")
	t.Setenv(config.IndexerURLVar, "")
	t.Setenv(config.ProfileServiceURLVar, "")

	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Network.RPCURL != "https://env.example" {
		t.Fatalf("env override not applied: %q", s.Network.RPCURL)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[timing]\nindexing_wait = \"soon\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := config.Settings{
		Network: config.NetworkSettings{RPCURL: "ftp://x", IndexerURL: "not a url"},
		Wallet:  config.WalletSettings{Address: "0x123"},
	}
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"network.rpc_url", "network.indexer_url", "wallet.address"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv(config.RPCURLVar, "")
	t.Setenv(config.IndexerURLVar, "")
	t.Setenv(config.ProfileServiceURLVar, "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := config.Settings{
		Network: config.NetworkSettings{Name: "gnosis", ChainID: 100},
		Wallet: config.WalletSettings{
			Address:  "0x2222222222222222222222222222222222222222",
			Keystore: "/keys/a.json",
		},
		Timing: config.TimingSettings{IndexingWait: config.Duration{Duration: 5 * time.Second}},
	}
	if err := config.Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Wallet != in.Wallet || out.Network.ChainID != 100 || out.IndexingWait() != 5*time.Second {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
