package cmd

import (
	"context"
	"math/big"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cmdutil "github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groups"
)

var groupInfoCmd = &cobra.Command{
	Use:   "group-info",
	Short: "Show details, members and trust statistics of a group",
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
		var info groupInfo
		err = withSpinner(appUI, "Reading the group", func() error {
			var err error
			info, err = fetchGroupInfo(cmd.Context(), sess, group.Address)
			return err
		})
		if err != nil {
			return err
		}
		renderGroupInfo(appUI, info)
		return nil
	},
}

// fetchGroupInfo reads details, members, trust edges and on-chain data
// concurrently. Only a total failure of the member or trust sources fails
// the whole read, everything else falls back to placeholders.
func fetchGroupInfo(ctx context.Context, sess *cmdutil.Session, group string) (groupInfo, error) {
	info := groupInfo{Wallet: sess.WalletAddress()}
	addr := gethcommon.HexToAddress(group)
	var edges []groups.TrustEdge

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := sess.Directory.Lookup(gctx, group)
		if err != nil {
			return err
		}
		admin, err := sess.Circles.BaseGroupAdmin(gctx, addr)
		if err != nil {
			sess.Log.Debug().Err(err).Msg("base group admin read")
		}
		rec.Owner = preferOnChain(rec.Owner, admin.Owner)
		rec.Service = preferOnChain(rec.Service, admin.Service)
		rec.FeeCollection = preferOnChain(rec.FeeCollection, admin.FeeCollection)
		info.Record = rec
		return nil
	})
	g.Go(func() error {
		members, err := sess.Aggregator.ListMembers(gctx, group)
		info.Members = members
		return err
	})
	g.Go(func() error {
		var err error
		edges, err = sess.Aggregator.ListTrustEdges(gctx, group)
		return err
	})
	g.Go(func() error {
		conditions, err := sess.Circles.MembershipConditions(gctx, addr)
		if err != nil {
			sess.Log.Debug().Err(err).Msg("membership conditions read")
			return nil
		}
		info.Conditions = make([]string, 0, len(conditions))
		for _, c := range conditions {
			info.Conditions = append(info.Conditions, strings.ToLower(c.Hex()))
		}
		return nil
	})
	g.Go(func() error {
		info.ShortName, info.TokenName, info.TokenSymbol, info.TotalSupply = readToken(gctx, sess, addr)
		if info.Wallet != "" {
			b, err := sess.Circles.Balance(gctx, gethcommon.HexToAddress(info.Wallet), addr)
			if err != nil {
				sess.Log.Debug().Err(err).Msg("wallet balance read")
				b = big.NewInt(0)
			}
			info.WalletBalance = b
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return groupInfo{}, err
	}
	info.Stats = groups.Stats(edges, info.Members.Len())
	return info, nil
}

// readToken defaults every field on its own so one failed read does not
// hide the others.
func readToken(ctx context.Context, sess *cmdutil.Session, addr gethcommon.Address) (shortName, name, symbol string, supply *big.Int) {
	var err error
	if shortName, err = sess.Circles.ShortName(ctx, addr); err != nil {
		sess.Log.Debug().Err(err).Msg("short name read")
		shortName = ""
	}
	if name, err = sess.Circles.TokenName(ctx, addr); err != nil || name == "" {
		name = groups.UnknownName
	}
	if symbol, err = sess.Circles.TokenSymbol(ctx, addr); err != nil || symbol == "" {
		symbol = groups.UnknownSymbol
	}
	if supply, err = sess.Circles.TotalSupply(ctx, addr); err != nil {
		supply = big.NewInt(0)
	}
	return shortName, name, symbol, supply
}

func preferOnChain(indexed string, onChain gethcommon.Address) string {
	if onChain == (gethcommon.Address{}) {
		return indexed
	}
	return strings.ToLower(onChain.Hex())
}

func init() {
	groupInfoCmd.Flags().StringVarP(&config.Group, "group", "g", "", "group address or name from the local book")
	rootCmd.AddCommand(groupInfoCmd)
}
