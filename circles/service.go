package circles

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mr-tron/base58"

	"github.com/tranvictor/circles-groups/networks"
)

// MaxExpiry is the largest uint96, used by the Hub as "trusted forever".
var MaxExpiry = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))

// Chain is what the contract layer needs from a node connection.
// ledger.Client implements it.
type Chain interface {
	From() (common.Address, error)
	ReadContract(ctx context.Context, result any, caddr common.Address, a *abi.ABI, method string, args ...any) error
	Execute(ctx context.Context, caddr common.Address, a *abi.ABI, method string, args ...any) (*types.Receipt, error)
}

// Contracts are the Circles v2 deployment addresses.
type Contracts struct {
	Hub              common.Address
	NameRegistry     common.Address
	BaseGroupFactory common.Address
	BaseMintPolicy   common.Address
}

func ContractsOf(n networks.Network) Contracts {
	return Contracts{
		Hub:              n.GetHubAddress(),
		NameRegistry:     n.GetNameRegistryAddress(),
		BaseGroupFactory: n.GetBaseGroupFactoryAddress(),
		BaseMintPolicy:   n.GetBaseMintPolicyAddress(),
	}
}

// Service wraps the Circles contracts the CLI talks to.
type Service struct {
	chain     Chain
	contracts Contracts
}

func NewService(chain Chain, contracts Contracts) *Service {
	return &Service{chain: chain, contracts: contracts}
}

func (s *Service) Contracts() Contracts {
	return s.contracts
}

// TokenID is the ERC-1155 id of an avatar's personal or group token.
func TokenID(avatar common.Address) *big.Int {
	return new(big.Int).SetBytes(avatar.Bytes())
}

// RegisterGroup registers the signer as a standard group on the Hub.
func (s *Service) RegisterGroup(ctx context.Context, name, symbol string, metadataDigest [32]byte) (*types.Receipt, error) {
	return s.chain.Execute(ctx, s.contracts.Hub, HubABI, "registerGroup",
		s.contracts.BaseMintPolicy, name, symbol, metadataDigest)
}

type BaseGroupParams struct {
	Owner          common.Address
	Service        common.Address
	FeeCollection  common.Address
	Conditions     []common.Address
	Name           string
	Symbol         string
	MetadataDigest [32]byte
}

type BaseGroupDeployment struct {
	Group   common.Address
	TxHash  common.Hash
	Receipt *types.Receipt
	// Confident is false when Group was guessed from raw log topics.
	Confident bool
}

// CreateBaseGroup deploys a base group through the factory and finds the new
// group address in the receipt.
func (s *Service) CreateBaseGroup(ctx context.Context, p BaseGroupParams) (BaseGroupDeployment, error) {
	conditions := p.Conditions
	if conditions == nil {
		conditions = []common.Address{}
	}
	receipt, err := s.chain.Execute(ctx, s.contracts.BaseGroupFactory, BaseGroupFactoryABI, "createBaseGroup",
		p.Owner, p.Service, p.FeeCollection, conditions, p.Name, p.Symbol, p.MetadataDigest)
	if err != nil {
		return BaseGroupDeployment{}, err
	}
	group, confident, err := BaseGroupAddressFromReceipt(receipt, s.contracts.BaseGroupFactory, p.Owner)
	if err != nil {
		return BaseGroupDeployment{TxHash: receipt.TxHash, Receipt: receipt}, err
	}
	return BaseGroupDeployment{
		Group:     group,
		TxHash:    receipt.TxHash,
		Receipt:   receipt,
		Confident: confident,
	}, nil
}

// Trust makes group trust member until expiry. Zero expiry revokes trust.
// A group that is the signer itself (registered on the Hub) trusts through
// the Hub, a base group trusts through its own contract.
func (s *Service) Trust(ctx context.Context, group, member common.Address, expiry *big.Int) (*types.Receipt, error) {
	from, err := s.chain.From()
	if err != nil {
		return nil, err
	}
	if from == group {
		return s.chain.Execute(ctx, s.contracts.Hub, HubABI, "trust", member, expiry)
	}
	return s.chain.Execute(ctx, group, BaseGroupABI, "trust", member, expiry)
}

func (s *Service) AddMember(ctx context.Context, group, member common.Address) (*types.Receipt, error) {
	return s.Trust(ctx, group, member, MaxExpiry)
}

func (s *Service) RemoveMember(ctx context.Context, group, member common.Address) (*types.Receipt, error) {
	return s.Trust(ctx, group, member, big.NewInt(0))
}

func (s *Service) TrustBatch(ctx context.Context, group common.Address, members []common.Address, expiry *big.Int) (*types.Receipt, error) {
	if len(members) == 0 {
		return nil, errors.New("no members to trust")
	}
	if expiry == nil {
		expiry = MaxExpiry
	}
	return s.chain.Execute(ctx, group, BaseGroupABI, "trustBatchWithConditions", members, expiry)
}

func (s *Service) Balance(ctx context.Context, account, group common.Address) (*big.Int, error) {
	var r *big.Int
	if err := s.chain.ReadContract(ctx, &r, s.contracts.Hub, HubABI, "balanceOf", account, TokenID(group)); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) TotalSupply(ctx context.Context, group common.Address) (*big.Int, error) {
	var r *big.Int
	if err := s.chain.ReadContract(ctx, &r, s.contracts.Hub, HubABI, "totalSupply", TokenID(group)); err != nil {
		return nil, err
	}
	return r, nil
}

// Transfer sends amount of the group token from the signer to to.
func (s *Service) Transfer(ctx context.Context, group, to common.Address, amount *big.Int) (*types.Receipt, error) {
	from, err := s.chain.From()
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("cannot transfer to yourself (%s)", to.Hex())
	}
	return s.chain.Execute(ctx, s.contracts.Hub, HubABI, "safeTransferFrom",
		from, to, TokenID(group), amount, []byte{})
}

func (s *Service) IsGroup(ctx context.Context, avatar common.Address) (bool, error) {
	var r bool
	err := s.chain.ReadContract(ctx, &r, s.contracts.Hub, HubABI, "isGroup", avatar)
	return r, err
}

func (s *Service) TokenName(ctx context.Context, avatar common.Address) (string, error) {
	var r string
	err := s.chain.ReadContract(ctx, &r, s.contracts.NameRegistry, NameRegistryABI, "name", avatar)
	return r, err
}

func (s *Service) TokenSymbol(ctx context.Context, avatar common.Address) (string, error) {
	var r string
	err := s.chain.ReadContract(ctx, &r, s.contracts.NameRegistry, NameRegistryABI, "symbol", avatar)
	return r, err
}

// ShortName returns the registered short name of avatar, or "" when none is
// registered.
func (s *Service) ShortName(ctx context.Context, avatar common.Address) (string, error) {
	var r *big.Int
	if err := s.chain.ReadContract(ctx, &r, s.contracts.NameRegistry, NameRegistryABI, "shortNames", avatar); err != nil {
		return "", err
	}
	return EncodeShortName(r), nil
}

// EncodeShortName renders a uint72 short name in base58.
func EncodeShortName(v *big.Int) string {
	if v == nil || v.Sign() == 0 {
		return ""
	}
	return base58.Encode(v.Bytes())
}

func (s *Service) MembershipConditions(ctx context.Context, group common.Address) ([]common.Address, error) {
	var r []common.Address
	if err := s.chain.ReadContract(ctx, &r, group, BaseGroupABI, "getMembershipConditions"); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) SetMembershipCondition(ctx context.Context, group, condition common.Address, enabled bool) (*types.Receipt, error) {
	return s.chain.Execute(ctx, group, BaseGroupABI, "setMembershipCondition", condition, enabled)
}

func (s *Service) SetOwner(ctx context.Context, group, owner common.Address) (*types.Receipt, error) {
	return s.chain.Execute(ctx, group, BaseGroupABI, "setOwner", owner)
}

func (s *Service) SetService(ctx context.Context, group, service common.Address) (*types.Receipt, error) {
	return s.chain.Execute(ctx, group, BaseGroupABI, "setService", service)
}

func (s *Service) SetFeeCollection(ctx context.Context, group, feeCollection common.Address) (*types.Receipt, error) {
	return s.chain.Execute(ctx, group, BaseGroupABI, "setFeeCollection", feeCollection)
}

func (s *Service) RegisterShortName(ctx context.Context, group common.Address, nonce *big.Int) (*types.Receipt, error) {
	if nonce == nil || nonce.Sign() < 0 {
		return nil, errors.New("nonce must be a non-negative integer")
	}
	return s.chain.Execute(ctx, group, BaseGroupABI, "registerShortNameWithNonce", nonce)
}

// BaseGroupAdmin holds the admin addresses a base group reports about
// itself.
type BaseGroupAdmin struct {
	Owner         common.Address
	Service       common.Address
	FeeCollection common.Address
}

func (s *Service) BaseGroupAdmin(ctx context.Context, group common.Address) (BaseGroupAdmin, error) {
	var admin BaseGroupAdmin
	var errs []error
	for method, dst := range map[string]*common.Address{
		"owner":         &admin.Owner,
		"service":       &admin.Service,
		"feeCollection": &admin.FeeCollection,
	} {
		if err := s.chain.ReadContract(ctx, dst, group, BaseGroupABI, method); err != nil {
			errs = append(errs, err)
		}
	}
	return admin, errors.Join(errs...)
}
