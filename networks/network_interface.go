package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

// Network describes a chain that hosts a Circles v2 deployment together with
// the off-chain services the CLI talks to.
type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
	GetIndexerURL() string
	GetProfileServiceURL() string

	GetHubAddress() common.Address
	GetNameRegistryAddress() common.Address
	GetBaseGroupFactoryAddress() common.Address
	GetBaseMintPolicyAddress() common.Address

	MarshalJSON() ([]byte, error)
}
