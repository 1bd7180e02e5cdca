package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Send group tokens to another address",
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
		from := sess.WalletAddress()
		to, err := cmdutil.PromptAddress(appUI, "Recipient address:", config.To)
		if err != nil {
			return err
		}
		if strings.EqualFold(to, from) {
			return fmt.Errorf("cannot transfer to yourself")
		}
		amount, err := cmdutil.PromptAmount(appUI, "Amount:", config.Amount)
		if err != nil {
			return err
		}

		balance, err := sess.Circles.Balance(ctx, common.HexToAddress(from), common.HexToAddress(group.Address))
		if err != nil {
			return err
		}
		if balance.Cmp(amount) < 0 {
			return fmt.Errorf("insufficient group token balance: have %s, need %s",
				common.BigToFloatString(balance, common.CRCDecimals),
				common.BigToFloatString(amount, common.CRCDecimals))
		}

		appUI.KeyValue([][2]string{
			{"Group", group.Address},
			{"From", from},
			{"To", to},
			{"Amount", common.BigToFloatString(amount, common.CRCDecimals)},
		})
		if err := confirmOrAbort(appUI, "Send this transfer?"); err != nil {
			return err
		}
		receipt, err := sess.Circles.Transfer(ctx, common.HexToAddress(group.Address), common.HexToAddress(to), amount)
		if err != nil {
			return err
		}
		appUI.Success("Transferred %s to %s.", common.BigToFloatString(amount, common.CRCDecimals), to)
		printReceipt(appUI, receipt)
		return nil
	},
}

func init() {
	transferCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	transferCmd.Flags().StringVarP(&config.To, "to", "t", "", "recipient address")
	transferCmd.Flags().StringVarP(&config.Amount, "amount", "a", "", "amount in CRC, decimals allowed")
	transferCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(transferCmd)
}
