package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// TIMEOUT bounds every single node request.
const TIMEOUT time.Duration = 10 * time.Second

// Backend is the subset of ethclient.Client the ledger needs.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Signer signs transactions for one address.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Client reads from and writes to one EVM node.
type Client struct {
	nodeName string
	nodeURL  string
	rpc      *rpc.Client
	eth      Backend
	chainID  *big.Int
	signer   Signer

	// GasBufferPercent is added on top of the node's gas estimate.
	GasBufferPercent uint64
	PollInterval     time.Duration
	// LostAfter gives up on a transaction the node never returns a receipt
	// for. Zero waits until ctx is done.
	LostAfter time.Duration

	log zerolog.Logger
}

// Dial connects to url and checks the node serves expectedChainID. Pass 0
// to skip the check.
func Dial(ctx context.Context, name, url string, expectedChainID uint64, log zerolog.Logger) (*Client, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", name, err)
	}
	c := NewClient(ethclient.NewClient(client), log)
	c.nodeName = name
	c.nodeURL = url
	c.rpc = client

	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	id, err := c.eth.ChainID(timeout)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("couldn't read chain id from %s: %w", name, err)
	}
	if expectedChainID != 0 && id.Uint64() != expectedChainID {
		client.Close()
		return nil, fmt.Errorf("%s serves chain %d, expected %d", name, id.Uint64(), expectedChainID)
	}
	c.chainID = id
	return c, nil
}

// NewClient wraps an existing backend. The chain id is read lazily.
func NewClient(b Backend, log zerolog.Logger) *Client {
	return &Client{
		eth:              b,
		GasBufferPercent: 20,
		PollInterval:     5 * time.Second,
		LostAfter:        3 * time.Minute,
		log:              log,
	}
}

func (c *Client) NodeName() string {
	return c.nodeName
}

func (c *Client) NodeURL() string {
	return c.nodeURL
}

func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}

// WithSigner enables writes on behalf of s.
func (c *Client) WithSigner(s Signer) *Client {
	c.signer = s
	return c
}

var ErrNoSigner = errors.New("no wallet unlocked, run setup first")

// From is the address transactions are sent from.
func (c *Client) From() (common.Address, error) {
	if c.signer == nil {
		return common.Address{}, ErrNoSigner
	}
	return c.signer.Address(), nil
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if c.chainID != nil {
		return c.chainID, nil
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	id, err := c.eth.ChainID(timeout)
	if err != nil {
		return nil, fmt.Errorf("couldn't read chain id: %w", err)
	}
	c.chainID = id
	return id, nil
}

// ReadContract calls a view method and unpacks its outputs into result,
// e.g. a **big.Int, *string or *[]common.Address.
func (c *Client) ReadContract(ctx context.Context, result any, caddr common.Address, a *abi.ABI, method string, args ...any) error {
	data, err := a.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("couldn't pack %s: %w", method, err)
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	msg := ethereum.CallMsg{To: &caddr, Data: data}
	if c.signer != nil {
		msg.From = c.signer.Address()
	}
	out, err := c.eth.CallContract(timeout, msg, nil)
	if err != nil {
		return fmt.Errorf("%s on %s: %w", method, caddr.Hex(), err)
	}
	if len(out) == 0 {
		return fmt.Errorf("%s on %s: empty response, is it a contract?", method, caddr.Hex())
	}
	if err := a.UnpackIntoInterface(result, method, out); err != nil {
		return fmt.Errorf("couldn't unpack %s: %w", method, err)
	}
	return nil
}

// NativeBalance is the xDAI balance used to pay for gas.
func (c *Client) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return c.eth.BalanceAt(timeout, addr, nil)
}
