package util_test

import (
	"testing"

	"github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/config"
)

func TestResolveEndpointsDefaults(t *testing.T) {
	t.Setenv("GNOSIS_MAINNET_NODE", "")
	e, err := util.ResolveEndpoints("", config.Settings{})
	if err != nil {
		t.Fatalf("ResolveEndpoints: %v", err)
	}
	if e.Network.GetName() != "gnosis" || e.ChainID != 100 {
		t.Fatalf("network %s chain %d", e.Network.GetName(), e.ChainID)
	}
	if e.NodeURL != "https://rpc.gnosischain.com" || e.IndexerURL != "https://rpc.aboutcircles.com/" {
		t.Fatalf("unexpected endpoints %+v", e)
	}
}

func TestResolveEndpointsPrecedence(t *testing.T) {
	t.Setenv("GNOSIS_MAINNET_NODE", "https://env-node.example")
	e, err := util.ResolveEndpoints("xdai", config.Settings{})
	if err != nil {
		t.Fatalf("ResolveEndpoints: %v", err)
	}
	if e.NodeURL != "https://env-node.example" || e.NodeName != "GNOSIS_MAINNET_NODE" {
		t.Fatalf("env node not used: %+v", e)
	}

	s := config.Settings{Network: config.NetworkSettings{
		RPCURL:     "https://config-node.example",
		IndexerURL: "https://indexer.example/",
		ChainID:    10200,
	}}
	e, err = util.ResolveEndpoints("", s)
	if err != nil {
		t.Fatalf("ResolveEndpoints: %v", err)
	}
	if e.NodeURL != "https://config-node.example" || e.IndexerURL != "https://indexer.example/" || e.ChainID != 10200 {
		t.Fatalf("config values not used: %+v", e)
	}
}

func TestResolveEndpointsUnknownNetwork(t *testing.T) {
	if _, err := util.ResolveEndpoints("ropsten", config.Settings{}); err == nil {
		t.Fatalf("expected unknown network to fail")
	}
}
