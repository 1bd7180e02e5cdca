package networks

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

type GenericCirclesNetworkConfig struct {
	Name                    string            `json:"name"`
	AlternativeNames        []string          `json:"alternative_names"`
	ChainID                 uint64            `json:"chain_id"`
	NativeTokenSymbol       string            `json:"native_token_symbol"`
	NodeVariableName        string            `json:"node_variable_name"`
	DefaultNodes            map[string]string `json:"default_nodes"`
	IndexerURL              string            `json:"indexer_url"`
	ProfileServiceURL       string            `json:"profile_service_url"`
	HubAddress              common.Address    `json:"hub_address"`
	NameRegistryAddress     common.Address    `json:"name_registry_address"`
	BaseGroupFactoryAddress common.Address    `json:"base_group_factory_address"`
	BaseMintPolicyAddress   common.Address    `json:"base_mint_policy_address"`
}

// GenericCirclesNetwork is a Network fully described by its config, which is
// how custom networks are loaded from json.
type GenericCirclesNetwork struct {
	config GenericCirclesNetworkConfig
}

func NewGenericCirclesNetwork(config GenericCirclesNetworkConfig) *GenericCirclesNetwork {
	return &GenericCirclesNetwork{config: config}
}

func (gn *GenericCirclesNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericCirclesNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericCirclesNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericCirclesNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericCirclesNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericCirclesNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericCirclesNetwork) GetIndexerURL() string {
	return gn.config.IndexerURL
}

func (gn *GenericCirclesNetwork) GetProfileServiceURL() string {
	return gn.config.ProfileServiceURL
}

func (gn *GenericCirclesNetwork) GetHubAddress() common.Address {
	return gn.config.HubAddress
}

func (gn *GenericCirclesNetwork) GetNameRegistryAddress() common.Address {
	return gn.config.NameRegistryAddress
}

func (gn *GenericCirclesNetwork) GetBaseGroupFactoryAddress() common.Address {
	return gn.config.BaseGroupFactoryAddress
}

func (gn *GenericCirclesNetwork) GetBaseMintPolicyAddress() common.Address {
	return gn.config.BaseMintPolicyAddress
}

func (gn *GenericCirclesNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}
