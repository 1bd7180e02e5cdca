package cmd

import (
	"context"
	"fmt"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

type adminSetter func(ctx context.Context, sess *cmdutil.Session, group, value gethcommon.Address) (*types.Receipt, error)

// newAdminCmd builds a command that sets one admin address of a base group.
func newAdminCmd(use, role string, set adminSetter) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Change the %s of a base group", role),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer sess.Close()

			group, err := sess.ResolveGroup(appUI, config.Group)
			if err != nil {
				return err
			}
			value, err := cmdutil.PromptAddress(appUI, fmt.Sprintf("New %s address:", role), config.Address)
			if err != nil {
				return err
			}
			if err := confirmOrAbort(appUI, fmt.Sprintf("Set the %s of %s to %s?", role, group.Address, value)); err != nil {
				return err
			}
			receipt, err := set(cmd.Context(), sess, common.HexToAddress(group.Address), common.HexToAddress(value))
			if err != nil {
				return err
			}
			appUI.Success("The %s of %s is now %s.", role, group.Address, value)
			printReceipt(appUI, receipt)
			return nil
		},
	}
	c.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	c.Flags().StringVarP(&config.Address, "address", "a", "", fmt.Sprintf("new %s address", role))
	c.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	return c
}

func init() {
	rootCmd.AddCommand(
		newAdminCmd("set-owner", "owner", func(ctx context.Context, sess *cmdutil.Session, group, v gethcommon.Address) (*types.Receipt, error) {
			return sess.Circles.SetOwner(ctx, group, v)
		}),
		newAdminCmd("set-service", "service", func(ctx context.Context, sess *cmdutil.Session, group, v gethcommon.Address) (*types.Receipt, error) {
			return sess.Circles.SetService(ctx, group, v)
		}),
		newAdminCmd("set-fee-collection", "fee collection", func(ctx context.Context, sess *cmdutil.Session, group, v gethcommon.Address) (*types.Receipt, error) {
			return sess.Circles.SetFeeCollection(ctx, group, v)
		}),
	)
}
