package cmd

import (
	"fmt"
	"math/big"

	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/ui"
)

type groupInfo struct {
	Record      groups.GroupRecord
	ShortName   string
	TokenName   string
	TokenSymbol string
	TotalSupply *big.Int

	// Conditions is nil when the group is not a base group or the read failed.
	Conditions []string
	Members    groups.MemberSet
	Stats      groups.TrustStats

	Wallet        string
	WalletBalance *big.Int
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return groups.UnknownName
	}
	return s
}

func renderGroupInfo(u ui.UI, info groupInfo) {
	r := info.Record
	u.Section("Group")
	u.KeyValue([][2]string{
		{"Address", r.Address},
		{"Name", r.Name},
		{"Symbol", r.Symbol},
		{"Description", orNone(r.Description)},
		{"Short name", orNone(info.ShortName)},
	})

	u.Section("Administration")
	u.KeyValue([][2]string{
		{"Owner", orUnknown(r.Owner)},
		{"Service", orUnknown(r.Service)},
		{"Fee collection", orUnknown(r.FeeCollection)},
	})

	u.Section("Token")
	u.KeyValue([][2]string{
		{"Token name", info.TokenName},
		{"Token symbol", info.TokenSymbol},
		{"Total supply", common.ReadableAmount(info.TotalSupply, common.CRCDecimals)},
	})

	u.Section("Membership conditions")
	switch {
	case info.Conditions == nil:
		u.Info("Not available for this group.")
	case len(info.Conditions) == 0:
		u.Info("No conditions set.")
	default:
		renderAddressList(u, info.Conditions)
	}

	u.Section("Members")
	rows := [][2]string{{"Members", common.ReadableCount(info.Members.Len())}}
	if info.Wallet != "" {
		member := u.Style(ui.No("no"))
		if info.Members.Contains(info.Wallet) {
			member = u.Style(ui.Yes("yes"))
		}
		rows = append(rows,
			[2]string{"Your wallet", info.Wallet},
			[2]string{"You are a member", member},
			[2]string{"Your balance", fmt.Sprintf("%s %s", common.ReadableAmount(info.WalletBalance, common.CRCDecimals), info.TokenSymbol)},
		)
	}
	u.KeyValue(rows)

	renderTrustStats(u, info.Stats)
}

func renderTrustStats(u ui.UI, st groups.TrustStats) {
	u.Section("Trust")
	avg, _ := st.AverageLimit.Int(nil)
	rows := [][2]string{
		{"Connections", common.ReadableCount(st.TotalConnections)},
		{"Unlimited trusts", common.ReadableCount(st.UnlimitedTrusts)},
		{"Limited trusts", common.ReadableCount(st.LimitedTrusts)},
		{"Average limit", common.ReadableAmount(avg, common.CRCDecimals)},
	}
	if st.HasConnectivity {
		rows = append(rows, [2]string{"Connectivity", fmt.Sprintf("%.2f%%", st.Connectivity)})
	}
	u.KeyValue(rows)
}

func renderAddressList(u ui.UI, addrs []string) {
	rows := make([][]string, 0, len(addrs))
	for i, a := range addrs {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), a})
	}
	u.Table([]string{"#", "Address"}, rows)
}
