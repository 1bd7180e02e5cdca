package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrReverted = errors.New("transaction reverted")
	ErrTxLost   = errors.New("transaction not found by the node")
)

// WaitMined polls for the receipt of hash every PollInterval. A mined but
// failed transaction returns its receipt together with ErrReverted.
func (c *Client) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for %s: %w", hash.Hex(), ctx.Err())
		case t := <-ticker.C:
			timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
			receipt, err := c.eth.TransactionReceipt(timeout, hash)
			cancel()
			if err != nil {
				if !errors.Is(err, ethereum.NotFound) {
					c.log.Debug().Err(err).Str("tx", hash.Hex()).Msg("receipt poll failed")
				}
				if c.LostAfter > 0 && t.Sub(start) > c.LostAfter {
					return nil, fmt.Errorf("%w: %s after %s", ErrTxLost, hash.Hex(), c.LostAfter)
				}
				continue
			}
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: %s", ErrReverted, hash.Hex())
			}
			return receipt, nil
		}
	}
}
