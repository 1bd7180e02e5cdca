package circles

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrGroupNotInReceipt = errors.New("group address not found in the transaction logs")

// BaseGroupAddressFromReceipt finds the group deployed by a createBaseGroup
// transaction. It decodes the factory's BaseGroupCreated event and only when
// that is missing falls back to the first log whose second topic looks like
// an address other than owner. The second return value is false for the
// fallback.
func BaseGroupAddressFromReceipt(receipt *types.Receipt, factory, owner common.Address) (common.Address, bool, error) {
	if receipt == nil {
		return common.Address{}, false, ErrGroupNotInReceipt
	}
	created := BaseGroupFactoryABI.Events["BaseGroupCreated"].ID
	for _, l := range receipt.Logs {
		if l.Address != factory || len(l.Topics) < 2 || l.Topics[0] != created {
			continue
		}
		return common.BytesToAddress(l.Topics[1].Bytes()), true, nil
	}

	for _, l := range receipt.Logs {
		if len(l.Topics) < 2 {
			continue
		}
		addr, ok := topicAddress(l.Topics[1])
		if !ok || addr == owner {
			continue
		}
		return addr, false, nil
	}
	return common.Address{}, false, ErrGroupNotInReceipt
}

func topicAddress(topic common.Hash) (common.Address, bool) {
	b := topic.Bytes()
	if !bytes.Equal(b[:12], make([]byte, 12)) {
		return common.Address{}, false
	}
	addr := common.BytesToAddress(b[12:])
	return addr, addr != (common.Address{})
}
