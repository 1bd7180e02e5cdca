package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var registerNameCmd = &cobra.Command{
	Use:   "register-name",
	Short: "Register a short name for a base group",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		defer sess.Close()
		ctx := cmd.Context()

		group, err := sess.ResolveGroup(appUI, config.Group)
		if err != nil {
			return err
		}
		nonce, err := cmdutil.PromptNonNegativeInt(appUI, "Nonce:", config.Nonce)
		if err != nil {
			return err
		}
		if err := confirmOrAbort(appUI, fmt.Sprintf("Register a short name for %s with nonce %d?", group.Address, nonce)); err != nil {
			return err
		}

		gaddr := common.HexToAddress(group.Address)
		receipt, err := sess.Circles.RegisterShortName(ctx, gaddr, big.NewInt(nonce))
		if err != nil {
			return err
		}
		printReceipt(appUI, receipt)
		name, err := sess.Circles.ShortName(ctx, gaddr)
		if err != nil || name == "" {
			appUI.Success("Short name registered.")
			return nil
		}
		appUI.Success("Short name registered: %s", name)
		return nil
	},
}

func init() {
	registerNameCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	registerNameCmd.Flags().Int64VarP(&config.Nonce, "nonce", "n", -1, "nonce used to derive the short name")
	registerNameCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(registerNameCmd)
}
