package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/ui"
)

// lookupConcurrency bounds parallel index lookups for group names.
const lookupConcurrency = 4

var listGroupsCmd = &cobra.Command{
	Use:   "list-groups",
	Short: "List the groups an address is a member of",
	Long: `Lists the groups the wallet, or the address given with --user, is a member
of according to the Circles index. Groups deployed from this machine that the
index does not list yet are shown from the local group book.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		user := config.User
		if user == "" {
			user = sess.WalletAddress()
		}
		user, err = cmdutil.PromptAddress(appUI, "Address:", user)
		if err != nil {
			return err
		}

		var records []groups.GroupRecord
		err = withSpinner(appUI, "Reading memberships", func() error {
			var err error
			records, err = collectGroups(cmd.Context(), sess, user)
			return err
		})
		if err != nil {
			return err
		}
		renderGroupList(appUI, user, records, localOnly(sess, user, records))
		return nil
	},
}

func collectGroups(ctx context.Context, sess *cmdutil.Session, user string) ([]groups.GroupRecord, error) {
	addrs, err := sess.Aggregator.GroupsOf(ctx, user)
	if err != nil {
		return nil, err
	}
	records := make([]groups.GroupRecord, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, addr := range addrs {
		if e, found := sess.Book.Get(addr); found && e.Name != "" {
			records[i] = groups.GroupRecord{Address: addr, Name: e.Name, Symbol: e.Symbol, Source: "book"}
			continue
		}
		g.Go(func() error {
			rec, err := sess.Directory.Lookup(gctx, addr)
			records[i] = rec
			return err
		})
	}
	return records, g.Wait()
}

// localOnly returns book entries owned by user that the index did not list.
func localOnly(sess *cmdutil.Session, user string, listed []groups.GroupRecord) []groups.GroupRecord {
	seen := groups.NewMemberSet()
	for _, r := range listed {
		seen.Add(r.Address)
	}
	var out []groups.GroupRecord
	for _, e := range sess.Book.All() {
		if e.Owner != user || seen.Contains(e.Address) {
			continue
		}
		out = append(out, groups.GroupRecord{Address: e.Address, Name: e.Name, Symbol: e.Symbol, Source: "book"})
	}
	return out
}

func renderGroupList(u ui.UI, user string, listed, local []groups.GroupRecord) {
	u.Section("Groups of " + user)
	if len(listed) == 0 {
		u.Info("Not a member of any group.")
	} else {
		rows := make([][]string, 0, len(listed))
		for _, r := range listed {
			rows = append(rows, []string{r.Name, r.Symbol, r.Address})
		}
		u.Table([]string{"Name", "Symbol", "Address"}, rows)
		u.Info("%s groups.", common.ReadableCount(len(listed)))
	}
	if len(local) > 0 {
		u.Section("Deployed from this machine")
		rows := make([][]string, 0, len(local))
		for _, r := range local {
			rows = append(rows, []string{r.Name, r.Symbol, r.Address})
		}
		u.Table([]string{"Name", "Symbol", "Address"}, rows)
	}
}

func init() {
	listGroupsCmd.Flags().StringVarP(&config.User, "user", "u", "", "address to list groups for (default: the wallet)")
	rootCmd.AddCommand(listGroupsCmd)
}
