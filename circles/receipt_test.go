package circles_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/circles-groups/circles"
)

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func TestBaseGroupAddressFromEvent(t *testing.T) {
	created := circles.BaseGroupFactoryABI.Events["BaseGroupCreated"].ID
	deployed := common.HexToAddress("0x00000000000000000000000000000000000000d4")
	receipt := &types.Receipt{Logs: []*types.Log{
		{Address: contracts.Hub, Topics: []common.Hash{{1}, addressTopic(member)}},
		{Address: contracts.BaseGroupFactory, Topics: []common.Hash{created, addressTopic(deployed), addressTopic(signer), addressTopic(member)}},
	}}
	got, confident, err := circles.BaseGroupAddressFromReceipt(receipt, contracts.BaseGroupFactory, signer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != deployed || !confident {
		t.Fatalf("got %s confident=%v", got.Hex(), confident)
	}
}

func TestBaseGroupAddressHeuristicSkipsOwner(t *testing.T) {
	receipt := &types.Receipt{Logs: []*types.Log{
		{Address: contracts.Hub, Topics: []common.Hash{{1}}},
		{Address: contracts.Hub, Topics: []common.Hash{{2}, common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")}},
		{Address: contracts.Hub, Topics: []common.Hash{{3}, addressTopic(signer)}},
		{Address: contracts.Hub, Topics: []common.Hash{{4}, addressTopic(group)}},
	}}
	got, confident, err := circles.BaseGroupAddressFromReceipt(receipt, contracts.BaseGroupFactory, signer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != group || confident {
		t.Fatalf("got %s confident=%v", got.Hex(), confident)
	}
}

func TestBaseGroupAddressMissing(t *testing.T) {
	_, _, err := circles.BaseGroupAddressFromReceipt(&types.Receipt{}, contracts.BaseGroupFactory, signer)
	if !errors.Is(err, circles.ErrGroupNotInReceipt) {
		t.Fatalf("expected ErrGroupNotInReceipt, got %v", err)
	}
}
