package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var removeMemberCmd = &cobra.Command{
	Use:   "remove-member",
	Short: "Revoke the group's trust in a member",
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
		member, err := cmdutil.PromptAddress(appUI, "Member address:", config.Member)
		if err != nil {
			return err
		}

		var isMember bool
		err = withSpinner(appUI, "Checking current members", func() error {
			members, err := sess.Aggregator.ListMembers(ctx, group.Address)
			isMember = members.Contains(member)
			return err
		})
		if err != nil {
			return err
		}
		if !isMember {
			return fmt.Errorf("%s is not a member of %s", member, group.Address)
		}
		if err := confirmOrAbort(appUI, fmt.Sprintf("Remove %s from %s?", member, group.Address)); err != nil {
			return err
		}

		receipt, err := sess.Circles.RemoveMember(ctx, common.HexToAddress(group.Address), common.HexToAddress(member))
		if err != nil {
			return err
		}
		appUI.Success("%s is no longer trusted by %s.", member, group.Address)
		printReceipt(appUI, receipt)
		return nil
	},
}

func init() {
	removeMemberCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	removeMemberCmd.Flags().StringVarP(&config.Member, "member", "m", "", "member address")
	removeMemberCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(removeMemberCmd)
}
