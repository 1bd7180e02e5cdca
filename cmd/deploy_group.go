package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/circles-groups/circles"
	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groupbook"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/profiles"
	"github.com/tranvictor/circles-groups/ui"
)

var deployGroupCmd = &cobra.Command{
	Use:   "deploy-group",
	Short: "Register a standard group on the Hub and trust its first members",
	Long: `Registers the wallet as a Circles group using the base mint policy. The
token symbol is derived from the name unless --symbol is given. Once the
transaction is mined cg waits for the Circles index and looks the new group
up by owner and name, then trusts the members given with --members.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmdutil.PromptInput(appUI, "Group name:", config.Name, circles.ValidateName)
		if err != nil {
			return err
		}
		description, err := cmdutil.PromptOptional(appUI, "Description (optional):", config.Description, func(string) error { return nil })
		if err != nil {
			return err
		}
		symbol := circles.DeriveSymbol(name)
		if config.Symbol != "" {
			if err := circles.ValidateSymbol(config.Symbol); err != nil {
				return err
			}
			symbol = config.Symbol
		}
		members, err := common.SplitAddresses(config.Members)
		if err != nil {
			return err
		}

		sess, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		defer sess.Close()
		return deployGroup(cmd.Context(), appUI, sess, name, symbol, description, members)
	},
}

func deployGroup(ctx context.Context, u ui.UI, sess *cmdutil.Session, name, symbol, description string, members []string) error {
	owner := sess.WalletAddress()
	u.Section("New group")
	u.KeyValue([][2]string{
		{"Name", name},
		{"Symbol", symbol},
		{"Description", description},
		{"Owner", owner},
		{"Initial members", fmt.Sprintf("%d", len(members))},
	})
	if err := confirmOrAbort(u, "Register this group?"); err != nil {
		return err
	}

	var digest [32]byte
	err := withSpinner(u, "Pinning the group profile", func() error {
		cid, d, err := sess.Profiles.PinDigest(ctx, profiles.Profile{Name: name, Symbol: symbol, Description: description})
		sess.Log.Debug().Str("cid", cid).Msg("group profile")
		digest = d
		return err
	})
	if err != nil {
		return err
	}

	receipt, err := sess.Circles.RegisterGroup(ctx, name, symbol, digest)
	if err != nil {
		return err
	}
	u.Success("Group registration transaction mined.")
	printReceipt(u, receipt)

	var res groups.Resolution
	err = withSpinner(u, fmt.Sprintf("Waiting %s for the Circles index", sess.Resolver.IndexingWait), func() error {
		var err error
		res, err = sess.Resolver.ResolveNewGroup(ctx, owner, name)
		return err
	})
	if err != nil {
		return err
	}
	if res.Status == groups.Unresolved {
		reportUnresolved(u, res, owner)
		return nil
	}

	reportResolved(u, res)
	if err := sess.Book.Put(groupbook.Entry{
		Address: res.Address,
		Name:    name,
		Symbol:  symbol,
		Kind:    groupbook.KindStandard,
		Owner:   owner,
		TxHash:  receipt.TxHash.Hex(),
	}); err != nil {
		u.Warn("Couldn't record the group locally: %s", err)
	}

	trustInitialMembers(ctx, u, sess, res.Address, members)
	return nil
}

func reportResolved(u ui.UI, res groups.Resolution) {
	u.Success("Group address: %s", res.Address)
	if !res.NameConfirmed {
		u.Warn("The index returned the latest group of this owner, named %q. It could not confirm the name, double check before using it.", res.MatchedName)
	}
}

func reportUnresolved(u ui.UI, res groups.Resolution, owner string) {
	u.Warn("The group was registered but the Circles index has not listed it yet.")
	if res.Cause != nil {
		u.Warn("Every lookup failed: %s", res.Cause)
	}
	u.Info("Check again later with `cg list-groups -u %s` and add members with `cg add-member`.", owner)
}

func trustInitialMembers(ctx context.Context, u ui.UI, sess *cmdutil.Session, group string, members []string) {
	if len(members) == 0 {
		return
	}
	u.Section("Adding initial members")
	added := 0
	for _, m := range members {
		_, err := sess.Circles.AddMember(ctx, common.HexToAddress(group), common.HexToAddress(m))
		if err != nil {
			u.Error("%s: %s", m, err)
			continue
		}
		added++
		u.Success("%s trusted", m)
	}
	u.Info("%d of %d members added.", added, len(members))
}

func init() {
	deployGroupCmd.Flags().StringVarP(&config.Name, "name", "n", "", "group name")
	deployGroupCmd.Flags().StringVarP(&config.Description, "description", "d", "", "group description")
	deployGroupCmd.Flags().StringVarP(&config.Members, "members", "m", "", "comma separated addresses to trust once the group exists")
	deployGroupCmd.Flags().StringVar(&config.Symbol, "symbol", "", "token symbol, derived from the name by default")
	deployGroupCmd.Flags().BoolVarP(&config.AssumeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(deployGroupCmd)
}
