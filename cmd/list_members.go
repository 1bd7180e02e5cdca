package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/ui"
)

var listMembersCmd = &cobra.Command{
	Use:   "list-members",
	Short: "List group members merged from trust relations and membership records",
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
		var members groups.MemberSet
		err = withSpinner(appUI, "Collecting members", func() error {
			var err error
			members, err = sess.Aggregator.ListMembers(cmd.Context(), group.Address)
			return err
		})
		if err != nil {
			return err
		}
		return renderMembers(appUI, group.Address, members, config.JSONOutput)
	},
}

type membersDump struct {
	Group   string   `json:"group"`
	Count   int      `json:"count"`
	Members []string `json:"members"`
}

func renderMembers(u ui.UI, group string, members groups.MemberSet, asJSON bool) error {
	sorted := members.Sorted()
	if asJSON {
		out, err := json.MarshalIndent(membersDump{Group: group, Count: len(sorted), Members: sorted}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(u.Writer(), string(out))
		return err
	}
	u.Section(fmt.Sprintf("Members of %s", group))
	if len(sorted) == 0 {
		u.Info("The group has no members yet.")
		return nil
	}
	renderAddressList(u, sorted)
	u.Info("%s members.", common.ReadableCount(len(sorted)))
	return nil
}

func init() {
	listMembersCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	listMembersCmd.Flags().BoolVar(&config.JSONOutput, "json", false, "print the member list as json")
	rootCmd.AddCommand(listMembersCmd)
}
