package circles

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const hubABIJSON = `[
 {"type":"function","name":"registerGroup","stateMutability":"nonpayable","inputs":[{"name":"_mint","type":"address"},{"name":"_name","type":"string"},{"name":"_symbol","type":"string"},{"name":"_metadataDigest","type":"bytes32"}],"outputs":[]},
 {"type":"function","name":"trust","stateMutability":"nonpayable","inputs":[{"name":"_trustReceiver","type":"address"},{"name":"_expiry","type":"uint96"}],"outputs":[]},
 {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"_account","type":"address"},{"name":"_id","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[{"name":"_id","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_id","type":"uint256"},{"name":"_value","type":"uint256"},{"name":"_data","type":"bytes"}],"outputs":[]},
 {"type":"function","name":"isGroup","stateMutability":"view","inputs":[{"name":"_group","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"event","name":"RegisterGroup","anonymous":false,"inputs":[{"name":"group","type":"address","indexed":true},{"name":"mint","type":"address","indexed":true},{"name":"treasury","type":"address","indexed":true},{"name":"name","type":"string","indexed":false},{"name":"symbol","type":"string","indexed":false}]}
]`

const nameRegistryABIJSON = `[
 {"type":"function","name":"name","stateMutability":"view","inputs":[{"name":"_avatar","type":"address"}],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"symbol","stateMutability":"view","inputs":[{"name":"_avatar","type":"address"}],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"shortNames","stateMutability":"view","inputs":[{"name":"_avatar","type":"address"}],"outputs":[{"name":"","type":"uint72"}]}
]`

const baseGroupFactoryABIJSON = `[
 {"type":"function","name":"createBaseGroup","stateMutability":"nonpayable","inputs":[{"name":"_owner","type":"address"},{"name":"_service","type":"address"},{"name":"_feeCollection","type":"address"},{"name":"_initialConditions","type":"address[]"},{"name":"_name","type":"string"},{"name":"_symbol","type":"string"},{"name":"_metadataDigest","type":"bytes32"}],"outputs":[{"name":"group","type":"address"},{"name":"mintHandler","type":"address"},{"name":"treasury","type":"address"}]},
 {"type":"event","name":"BaseGroupCreated","anonymous":false,"inputs":[{"name":"group","type":"address","indexed":true},{"name":"owner","type":"address","indexed":true},{"name":"mintHandler","type":"address","indexed":true},{"name":"treasury","type":"address","indexed":false}]}
]`

const baseGroupABIJSON = `[
 {"type":"function","name":"trust","stateMutability":"nonpayable","inputs":[{"name":"_trustReceiver","type":"address"},{"name":"_expiry","type":"uint96"}],"outputs":[]},
 {"type":"function","name":"trustBatchWithConditions","stateMutability":"nonpayable","inputs":[{"name":"_members","type":"address[]"},{"name":"_expiry","type":"uint96"}],"outputs":[]},
 {"type":"function","name":"setMembershipCondition","stateMutability":"nonpayable","inputs":[{"name":"_condition","type":"address"},{"name":"_enabled","type":"bool"}],"outputs":[]},
 {"type":"function","name":"getMembershipConditions","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
 {"type":"function","name":"registerShortNameWithNonce","stateMutability":"nonpayable","inputs":[{"name":"_nonce","type":"uint256"}],"outputs":[]},
 {"type":"function","name":"setOwner","stateMutability":"nonpayable","inputs":[{"name":"_owner","type":"address"}],"outputs":[]},
 {"type":"function","name":"setService","stateMutability":"nonpayable","inputs":[{"name":"_service","type":"address"}],"outputs":[]},
 {"type":"function","name":"setFeeCollection","stateMutability":"nonpayable","inputs":[{"name":"_feeCollection","type":"address"}],"outputs":[]},
 {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
 {"type":"function","name":"service","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
 {"type":"function","name":"feeCollection","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

var (
	HubABI              = mustParse(hubABIJSON)
	NameRegistryABI     = mustParse(nameRegistryABIJSON)
	BaseGroupFactoryABI = mustParse(baseGroupFactoryABIJSON)
	BaseGroupABI        = mustParse(baseGroupABIJSON)
)

func mustParse(s string) *abi.ABI {
	a, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return &a
}
