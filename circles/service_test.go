package circles_test

import (
	"context"
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/circles-groups/circles"
)

type call struct {
	to     common.Address
	method string
	args   []any
}

type fakeChain struct {
	from    common.Address
	calls   []call
	reads   map[string]any
	receipt *types.Receipt
}

func (f *fakeChain) From() (common.Address, error) {
	if f.from == (common.Address{}) {
		return common.Address{}, errors.New("no signer")
	}
	return f.from, nil
}

func (f *fakeChain) ReadContract(_ context.Context, result any, caddr common.Address, _ *abi.ABI, method string, args ...any) error {
	f.calls = append(f.calls, call{caddr, method, args})
	v, ok := f.reads[method]
	if !ok {
		return errors.New("execution reverted")
	}
	reflect.ValueOf(result).Elem().Set(reflect.ValueOf(v))
	return nil
}

func (f *fakeChain) Execute(_ context.Context, caddr common.Address, _ *abi.ABI, method string, args ...any) (*types.Receipt, error) {
	f.calls = append(f.calls, call{caddr, method, args})
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

var contracts = circles.Contracts{
	Hub:              common.HexToAddress("0xc12C1E50ABB450d6205Ea2C3Fa861b3B834d13e8"),
	NameRegistry:     common.HexToAddress("0xA27566fD89162cC3D40Cb59c87AAaA49B85F3474"),
	BaseGroupFactory: common.HexToAddress("0xD0B5Bd9962197BEaC4cbA24244ec3587f19Bd06d"),
	BaseMintPolicy:   common.HexToAddress("0xcCa27c26CF7BAC2a9928f42201d48220F0e3a549"),
}

var (
	signer = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	group  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	member = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func lastCall(t *testing.T, f *fakeChain) call {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatalf("no contract call recorded")
	}
	return f.calls[len(f.calls)-1]
}

func TestTrustThroughHubWhenSignerIsGroup(t *testing.T) {
	f := &fakeChain{from: group}
	s := circles.NewService(f, contracts)
	if _, err := s.AddMember(context.Background(), group, member); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	c := lastCall(t, f)
	if c.to != contracts.Hub || c.method != "trust" {
		t.Fatalf("called %s on %s", c.method, c.to.Hex())
	}
	if c.args[1].(*big.Int).Cmp(circles.MaxExpiry) != 0 {
		t.Fatalf("expiry = %s", c.args[1])
	}
}

func TestTrustThroughBaseGroupContract(t *testing.T) {
	f := &fakeChain{from: signer}
	s := circles.NewService(f, contracts)
	if _, err := s.RemoveMember(context.Background(), group, member); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	c := lastCall(t, f)
	if c.to != group || c.method != "trust" {
		t.Fatalf("called %s on %s", c.method, c.to.Hex())
	}
	if c.args[1].(*big.Int).Sign() != 0 {
		t.Fatalf("untrust must use zero expiry, got %s", c.args[1])
	}
}

func TestRegisterGroupUsesBaseMintPolicy(t *testing.T) {
	f := &fakeChain{from: signer}
	s := circles.NewService(f, contracts)
	var digest [32]byte
	digest[0] = 1
	if _, err := s.RegisterGroup(context.Background(), "Berlin Bakers", "BERLINBA", digest); err != nil {
		t.Fatalf("RegisterGroup: %v", err)
	}
	c := lastCall(t, f)
	if c.to != contracts.Hub || c.method != "registerGroup" || c.args[0] != contracts.BaseMintPolicy {
		t.Fatalf("unexpected call %+v", c)
	}
}

func TestTransferRejectsSelf(t *testing.T) {
	f := &fakeChain{from: signer}
	s := circles.NewService(f, contracts)
	if _, err := s.Transfer(context.Background(), group, signer, big.NewInt(1)); err == nil {
		t.Fatalf("expected self transfer to fail")
	}
	if len(f.calls) != 0 {
		t.Fatalf("no call should be made")
	}
}

func TestTransferUsesGroupTokenID(t *testing.T) {
	f := &fakeChain{from: signer}
	s := circles.NewService(f, contracts)
	if _, err := s.Transfer(context.Background(), group, member, big.NewInt(5)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	c := lastCall(t, f)
	if c.method != "safeTransferFrom" || c.args[0] != signer || c.args[1] != member {
		t.Fatalf("unexpected call %+v", c)
	}
	if c.args[2].(*big.Int).Cmp(big.NewInt(0xb2)) != 0 {
		t.Fatalf("token id = %s", c.args[2])
	}
}

func TestBalanceAndShortName(t *testing.T) {
	f := &fakeChain{reads: map[string]any{
		"balanceOf":  big.NewInt(1000),
		"shortNames": big.NewInt(0),
	}}
	s := circles.NewService(f, contracts)
	b, err := s.Balance(context.Background(), member, group)
	if err != nil || b.Int64() != 1000 {
		t.Fatalf("Balance = %v, %v", b, err)
	}
	name, err := s.ShortName(context.Background(), group)
	if err != nil || name != "" {
		t.Fatalf("ShortName = %q, %v", name, err)
	}
}

func TestEncodeShortName(t *testing.T) {
	if got := circles.EncodeShortName(big.NewInt(58)); got != "21" {
		t.Fatalf("EncodeShortName(58) = %q", got)
	}
	if got := circles.EncodeShortName(nil); got != "" {
		t.Fatalf("EncodeShortName(nil) = %q", got)
	}
}

func TestRegisterShortNameRejectsNegativeNonce(t *testing.T) {
	s := circles.NewService(&fakeChain{from: signer}, contracts)
	if _, err := s.RegisterShortName(context.Background(), group, big.NewInt(-1)); err == nil {
		t.Fatalf("expected negative nonce to be rejected")
	}
}

func TestTrustBatchDefaultsToMaxExpiry(t *testing.T) {
	f := &fakeChain{from: signer}
	s := circles.NewService(f, contracts)
	if _, err := s.TrustBatch(context.Background(), group, []common.Address{member}, nil); err != nil {
		t.Fatalf("TrustBatch: %v", err)
	}
	c := lastCall(t, f)
	if c.method != "trustBatchWithConditions" || c.args[1].(*big.Int).Cmp(circles.MaxExpiry) != 0 {
		t.Fatalf("unexpected call %+v", c)
	}
	if _, err := s.TrustBatch(context.Background(), group, nil, nil); err == nil {
		t.Fatalf("expected empty batch to fail")
	}
}

func TestBaseGroupAdminJoinsErrors(t *testing.T) {
	owner := common.HexToAddress("0x1")
	f := &fakeChain{reads: map[string]any{"owner": owner}}
	admin, err := circles.NewService(f, contracts).BaseGroupAdmin(context.Background(), group)
	if err == nil {
		t.Fatalf("expected service and feeCollection reads to fail")
	}
	if admin.Owner != owner {
		t.Fatalf("owner = %s", admin.Owner.Hex())
	}
}
