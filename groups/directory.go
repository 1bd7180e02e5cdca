package groups

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/index"
)

// RecentGroupsScan is how many of the newest groups are scanned when the
// address filter finds nothing.
const RecentGroupsScan = 100

// Directory looks up group metadata in the index. Lookups go from the most
// precise query to the broadest and never fail on missing data, unknown
// fields keep placeholders.
type Directory struct {
	querier     GroupQuerier
	memberships MembershipSource
	log         zerolog.Logger
}

func NewDirectory(querier GroupQuerier, memberships MembershipSource, log zerolog.Logger) *Directory {
	return &Directory{querier: querier, memberships: memberships, log: log}
}

func (d *Directory) Lookup(ctx context.Context, group string) (GroupRecord, error) {
	addr, err := canonical(group)
	if err != nil {
		return GroupRecord{}, err
	}

	rows, err := d.querier.FindGroups(ctx, 1, index.GroupQuery{GroupAddressIn: []string{addr}})
	if err != nil {
		d.log.Debug().Err(err).Str("group", addr).Msg("group lookup by address failed")
	}
	if rec, found := pick(rows, addr); found {
		rec.Source = "index"
		return rec, nil
	}

	rows, err = d.querier.FindGroups(ctx, RecentGroupsScan, index.GroupQuery{})
	if err != nil {
		d.log.Debug().Err(err).Str("group", addr).Msg("recent groups scan failed")
	}
	if rec, found := pick(rows, addr); found {
		rec.Source = "recent-groups"
		return rec, nil
	}

	if rec, found := d.fromMembership(ctx, addr); found {
		return rec, nil
	}

	return GroupRecord{
		Address: addr,
		Name:    UnknownName,
		Symbol:  UnknownSymbol,
		Source:  "none",
	}, nil
}

func (d *Directory) fromMembership(ctx context.Context, addr string) (GroupRecord, bool) {
	pager := d.memberships.GroupMemberships(addr, 1)
	more, err := pager.NextPage(ctx)
	if err != nil {
		d.log.Debug().Err(err).Str("group", addr).Msg("membership lookup failed")
		return GroupRecord{}, false
	}
	if !more || len(pager.Current()) == 0 {
		return GroupRecord{}, false
	}
	row := pager.Current()[0]
	return GroupRecord{
		Address:     addr,
		Name:        orDefault(row.GroupName, UnknownName),
		Symbol:      orDefault(row.GroupSymbol, UnknownSymbol),
		Description: row.GroupDescription,
		Source:      "membership",
	}, true
}

func pick(rows []index.GroupRow, addr string) (GroupRecord, bool) {
	for _, row := range rows {
		if strings.ToLower(row.Group) != addr {
			continue
		}
		return GroupRecord{
			Address:       addr,
			Name:          orDefault(row.Name, UnknownName),
			Symbol:        orDefault(row.Symbol, UnknownSymbol),
			Owner:         strings.ToLower(row.Owner),
			Service:       strings.ToLower(row.Service),
			FeeCollection: strings.ToLower(row.FeeCollection),
		}, true
	}
	return GroupRecord{}, false
}
