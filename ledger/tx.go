package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BuildTx prepares an unsigned contract call from the signer. It uses a
// dynamic fee tx when the latest header carries a base fee.
func (c *Client) BuildTx(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	from, err := c.From()
	if err != nil {
		return nil, err
	}
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	nonce, err := c.eth.PendingNonceAt(timeout, from)
	if err != nil {
		return nil, fmt.Errorf("couldn't get nonce of %s: %w", from.Hex(), err)
	}
	gas, err := c.eth.EstimateGas(timeout, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return nil, fmt.Errorf("transaction would fail: %w", err)
	}
	gas = gas * (100 + c.GasBufferPercent) / 100

	header, err := c.eth.HeaderByNumber(timeout, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't get latest header: %w", err)
	}
	if header.BaseFee != nil && header.BaseFee.Sign() > 0 {
		tip, err := c.eth.SuggestGasTipCap(timeout)
		if err != nil {
			return nil, fmt.Errorf("couldn't get gas tip suggestion: %w", err)
		}
		feeCap := new(big.Int).Add(new(big.Int).Mul(header.BaseFee, big.NewInt(2)), tip)
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Value:     big.NewInt(0),
			Data:      data,
		}), nil
	}

	price, err := c.eth.SuggestGasPrice(timeout)
	if err != nil {
		return nil, fmt.Errorf("couldn't get gas price suggestion: %w", err)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: price,
		Gas:      gas,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     data,
	}), nil
}

// Send signs tx and hands it to the node. It returns the signed tx.
func (c *Client) Send(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	signed, err := c.signer.SignTx(tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	if err := c.eth.SendTransaction(timeout, signed); err != nil {
		return nil, fmt.Errorf("couldn't broadcast %s: %w", signed.Hash().Hex(), err)
	}
	c.log.Debug().Str("tx", signed.Hash().Hex()).Uint64("nonce", signed.Nonce()).Msg("broadcasted")
	return signed, nil
}

// Transact packs method, sends it to caddr and returns the broadcast tx
// without waiting for it to be mined.
func (c *Client) Transact(ctx context.Context, caddr common.Address, a *abi.ABI, method string, args ...any) (*types.Transaction, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't pack %s: %w", method, err)
	}
	tx, err := c.BuildTx(ctx, caddr, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return c.Send(ctx, tx)
}

// Execute is Transact followed by WaitMined.
func (c *Client) Execute(ctx context.Context, caddr common.Address, a *abi.ABI, method string, args ...any) (*types.Receipt, error) {
	tx, err := c.Transact(ctx, caddr, a, method, args...)
	if err != nil {
		return nil, err
	}
	return c.WaitMined(ctx, tx.Hash())
}
