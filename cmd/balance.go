package cmd

import (
	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the group token balance of an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer sess.Close()
		ctx := cmd.Context()

		group, err := sess.ResolveGroup(appUI, config.Group)
		if err != nil {
			return err
		}
		user := config.User
		if user == "" {
			user = sess.WalletAddress()
		}
		user, err = cmdutil.PromptAddress(appUI, "Address:", user)
		if err != nil {
			return err
		}

		balance, err := sess.Circles.Balance(ctx, common.HexToAddress(user), common.HexToAddress(group.Address))
		if err != nil {
			return err
		}
		rows := [][2]string{
			{"Group", group.Address},
			{"Address", user},
			{"Balance", common.ReadableAmount(balance, common.CRCDecimals)},
			{"Exact balance", common.BigToFloatString(balance, common.CRCDecimals)},
		}
		if native, err := sess.Ledger.NativeBalance(ctx, common.HexToAddress(user)); err == nil {
			rows = append(rows, [2]string{
				sess.Endpoints.Network.GetNativeTokenSymbol() + " for gas",
				common.ReadableAmount(native, 18),
			})
		}
		appUI.KeyValue(rows)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	balanceCmd.Flags().StringVarP(&config.User, "user", "u", "", "address to check (default: the wallet)")
	rootCmd.AddCommand(balanceCmd)
}
