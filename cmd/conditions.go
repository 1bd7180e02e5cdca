package cmd

import (
	"context"
	"fmt"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
)

var setConditionCmd = &cobra.Command{
	Use:   "set-condition",
	Short: "Enable or disable a membership condition on a base group",
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
		condition, err := cmdutil.PromptAddress(appUI, "Condition contract address:", config.Condition)
		if err != nil {
			return err
		}
		action := "Enable"
		if !config.Enabled {
			action = "Disable"
		}
		if err := confirmOrAbort(appUI, fmt.Sprintf("%s condition %s on %s?", action, condition, group.Address)); err != nil {
			return err
		}

		receipt, err := sess.Circles.SetMembershipCondition(ctx, common.HexToAddress(group.Address), common.HexToAddress(condition), config.Enabled)
		if err != nil {
			return err
		}
		appUI.Success("Condition %s %sd.", condition, strings.ToLower(action))
		printReceipt(appUI, receipt)
		return listConditions(ctx, sess, common.HexToAddress(group.Address))
	},
}

var listConditionsCmd = &cobra.Command{
	Use:   "list-conditions",
	Short: "List the membership conditions of a base group",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		group, err := sess.ResolveGroup(appUI, config.Group)
		if err != nil {
			return err
		}
		return listConditions(cmd.Context(), sess, common.HexToAddress(group.Address))
	},
}

func listConditions(ctx context.Context, sess *cmdutil.Session, group gethcommon.Address) error {
	conditions, err := sess.Circles.MembershipConditions(ctx, group)
	if err != nil {
		return fmt.Errorf("couldn't read membership conditions, is %s a base group? %w", strings.ToLower(group.Hex()), err)
	}
	appUI.Section("Membership conditions")
	if len(conditions) == 0 {
		appUI.Info("No conditions set.")
		return nil
	}
	addrs := make([]string, 0, len(conditions))
	for _, c := range conditions {
		addrs = append(addrs, strings.ToLower(c.Hex()))
	}
	renderAddressList(appUI, addrs)
	return nil
}

func init() {
	setConditionCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	setConditionCmd.Flags().StringVarP(&config.Condition, "condition", "c", "", "condition contract address")
	setConditionCmd.Flags().BoolVarP(&config.Enabled, "enabled", "e", true, "enable the condition, --enabled=false disables it")
	setConditionCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	listConditionsCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	rootCmd.AddCommand(setConditionCmd)
	rootCmd.AddCommand(listConditionsCmd)
}
