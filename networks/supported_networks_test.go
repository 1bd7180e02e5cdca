package networks_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tranvictor/circles-groups/networks"
)

func TestGnosisIsBuiltin(t *testing.T) {
	for _, name := range []string{"gnosis", "xdai", "GNOSIS"} {
		n, err := networks.GetNetwork(name)
		if err != nil {
			t.Fatalf("GetNetwork(%q): %v", name, err)
		}
		if n.GetChainID() != 100 {
			t.Fatalf("unexpected chain id %d", n.GetChainID())
		}
	}
	n, err := networks.GetNetworkByID(100)
	if err != nil || n.GetName() != "gnosis" {
		t.Fatalf("GetNetworkByID(100) = %v, %v", n, err)
	}
}

func TestUnknownNetwork(t *testing.T) {
	_, err := networks.GetNetwork("mainnet")
	if !errors.Is(err, networks.ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound, got %v", err)
	}
}

func TestLoadCustomNetworks(t *testing.T) {
	dir := t.TempDir()
	def := `{
		"name": "circles-local",
		"chain_id": 31337,
		"default_nodes": {"local": "http://127.0.0.1:8545"},
		"indexer_url": "http://127.0.0.1:8081/",
		"hub_address": "0x1111111111111111111111111111111111111111"
	}`
	if err := os.WriteFile(filepath.Join(dir, "local.json"), []byte(def), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := networks.LoadCustomNetworks(dir); err == nil {
		t.Fatalf("expected an error for the broken definition")
	}
	n, err := networks.GetNetwork("circles-local")
	if err != nil {
		t.Fatalf("custom network not registered: %v", err)
	}
	if n.GetIndexerURL() != "http://127.0.0.1:8081/" {
		t.Fatalf("unexpected indexer url %q", n.GetIndexerURL())
	}
	if n.GetHubAddress().Hex() != "0x1111111111111111111111111111111111111111" {
		t.Fatalf("unexpected hub %s", n.GetHubAddress().Hex())
	}
}

func TestAddNetworkPersists(t *testing.T) {
	dir := t.TempDir()
	n, err := networks.NewNetworkFromJSON([]byte(`{"name": "Chiado", "chain_id": 10200}`))
	if err != nil {
		t.Fatalf("NewNetworkFromJSON: %v", err)
	}
	if err := networks.AddNetwork(dir, n); err != nil {
		t.Fatalf("AddNetwork: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "chiado.json")); err != nil {
		t.Fatalf("definition not saved: %v", err)
	}
	if _, err := networks.GetNetwork("chiado"); err != nil {
		t.Fatalf("network not registered: %v", err)
	}
	found := false
	for _, s := range networks.GetSupportedNetworks() {
		if s.GetChainID() == 10200 {
			found = true
		}
	}
	if !found {
		t.Fatalf("chiado missing from supported networks")
	}
}
