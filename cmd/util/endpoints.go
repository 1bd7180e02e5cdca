package util

import (
	"os"
	"sort"
	"strings"

	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/networks"
)

// Endpoints are the resolved addresses of every service a command talks to.
type Endpoints struct {
	Network           networks.Network
	ChainID           uint64
	NodeName          string
	NodeURL           string
	IndexerURL        string
	ProfileServiceURL string
}

// ResolveEndpoints picks the network from the flag, then the config file,
// then the default. Node urls come from the config file, then the network's
// node env var, then its default nodes.
func ResolveEndpoints(flagNetwork string, s config.Settings) (Endpoints, error) {
	name := strings.TrimSpace(flagNetwork)
	if name == "" {
		name = s.Network.Name
	}
	if name == "" {
		name = config.DefaultNetwork
	}
	n, err := networks.GetNetwork(name)
	if err != nil {
		return Endpoints{}, err
	}

	e := Endpoints{
		Network:           n,
		ChainID:           n.GetChainID(),
		IndexerURL:        n.GetIndexerURL(),
		ProfileServiceURL: n.GetProfileServiceURL(),
	}
	if s.Network.ChainID != 0 {
		e.ChainID = s.Network.ChainID
	}
	if s.Network.IndexerURL != "" {
		e.IndexerURL = s.Network.IndexerURL
	}
	if s.Network.ProfileServiceURL != "" {
		e.ProfileServiceURL = s.Network.ProfileServiceURL
	}

	switch {
	case s.Network.RPCURL != "":
		e.NodeName, e.NodeURL = "config", s.Network.RPCURL
	case n.GetNodeVariableName() != "" && strings.TrimSpace(os.Getenv(n.GetNodeVariableName())) != "":
		e.NodeName, e.NodeURL = n.GetNodeVariableName(), strings.TrimSpace(os.Getenv(n.GetNodeVariableName()))
	default:
		nodes := n.GetDefaultNodes()
		names := make([]string, 0, len(nodes))
		for k := range nodes {
			names = append(names, k)
		}
		sort.Strings(names)
		if len(names) > 0 {
			e.NodeName, e.NodeURL = names[0], nodes[names[0]]
		}
	}
	return e, nil
}
