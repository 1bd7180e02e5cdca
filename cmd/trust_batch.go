package cmd

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/circles"
	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var trustBatchCmd = &cobra.Command{
	Use:   "trust-batch",
	Short: "Trust several members at once, checking the group's membership conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		expiry, err := batchExpiry(config.Expiry, time.Now())
		if err != nil {
			return err
		}
		sess, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		defer sess.Close()

		group, err := sess.ResolveGroup(appUI, config.Group)
		if err != nil {
			return err
		}
		members, err := cmdutil.PromptAddresses(appUI, "Member addresses (comma separated):", config.Members)
		if err != nil {
			return err
		}

		until := "no expiry"
		if expiry.Cmp(circles.MaxExpiry) != 0 {
			until = time.Unix(expiry.Int64(), 0).UTC().Format(time.RFC3339)
		}
		appUI.KeyValue([][2]string{
			{"Group", group.Address},
			{"Members", fmt.Sprintf("%d", len(members))},
			{"Expiry", until},
		})
		if err := confirmOrAbort(appUI, "Trust these members?"); err != nil {
			return err
		}

		receipt, err := sess.Circles.TrustBatch(cmd.Context(), common.HexToAddress(group.Address), common.HexToAddresses(members), expiry)
		if err != nil {
			return err
		}
		appUI.Success("%d members trusted.", len(members))
		printReceipt(appUI, receipt)
		return nil
	},
}

// batchExpiry turns the --expiry unix timestamp into the uint96 argument.
// Zero means no expiry, anything else must be in the future.
func batchExpiry(ts int64, now time.Time) (*big.Int, error) {
	if ts == 0 {
		return circles.MaxExpiry, nil
	}
	if ts <= now.Unix() {
		return nil, fmt.Errorf("expiry %d must be in the future", ts)
	}
	return big.NewInt(ts), nil
}

func init() {
	trustBatchCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	trustBatchCmd.Flags().StringVarP(&config.Members, "members", "m", "", "comma separated member addresses")
	trustBatchCmd.Flags().Int64VarP(&config.Expiry, "expiry", "e", 0, "unix timestamp the trust expires at, 0 for no expiry")
	trustBatchCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(trustBatchCmd)
}
