package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var GnosisMainnet Network = NewGnosisMainnet()

func NewGnosisMainnet() *GenericCirclesNetwork {
	return NewGenericCirclesNetwork(GenericCirclesNetworkConfig{
		Name:              "gnosis",
		AlternativeNames:  []string{"xdai", "gnosis-chain"},
		ChainID:           100,
		NativeTokenSymbol: "xDAI",
		NodeVariableName:  "GNOSIS_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"gnosischain": "https://rpc.gnosischain.com",
		},
		IndexerURL:              "https://rpc.aboutcircles.com/",
		ProfileServiceURL:       "https://rpc.aboutcircles.com/profiles/",
		HubAddress:              common.HexToAddress("0xc12C1E50ABB450d6205Ea2C3Fa861b3B834d13e8"),
		NameRegistryAddress:     common.HexToAddress("0xA27566fD89162cC3D40Cb59c87AAaA49B85F3474"),
		BaseGroupFactoryAddress: common.HexToAddress("0xD0B5Bd9962197BEaC4cbA24244ec3587f19Bd06d"),
		BaseMintPolicyAddress:   common.HexToAddress("0xcCa27c26CF7BAC2a9928f42201d48220F0e3a549"),
	})
}
