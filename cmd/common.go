package cmd

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/ledger"
	"github.com/tranvictor/circles-groups/ui"
)

var errAborted = errors.New("aborted")

func reportError(u ui.UI, err error) {
	if errors.Is(err, errAborted) {
		u.Warn("Aborted.")
		return
	}
	u.Error("%s", err)
	if hint := ledger.Hint(err); hint != "" {
		u.Info("%s", hint)
	}
}

func openSession(cmd *cobra.Command, needWallet bool) (*cmdutil.Session, error) {
	return cmdutil.NewSession(cmd.Context(), appUI, appLog, needWallet)
}

// withSpinner runs fn while a spinner shows msg.
func withSpinner(u ui.UI, msg string, fn func() error) error {
	done := u.Spinner(msg)
	err := fn()
	done()
	return err
}

func printReceipt(u ui.UI, r *types.Receipt) {
	if r == nil {
		return
	}
	u.KeyValue([][2]string{
		{"Transaction", r.TxHash.Hex()},
		{"Block", fmt.Sprintf("%d", r.BlockNumber)},
		{"Gas used", fmt.Sprintf("%d", r.GasUsed)},
	})
}

func confirmOrAbort(u ui.UI, prompt string) error {
	if !cmdutil.Confirm(u, prompt) {
		return errAborted
	}
	return nil
}
