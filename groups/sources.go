package groups

import (
	"context"
	"fmt"

	"github.com/tranvictor/circles-groups/index"
)

// GroupQuerier finds indexed group registrations. Rows come newest first.
type GroupQuerier interface {
	FindGroups(ctx context.Context, limit int, q index.GroupQuery) ([]index.GroupRow, error)
}

// TrustSource exposes the trust graph of an avatar, either pre-aggregated
// in one call or as raw paginated events.
type TrustSource interface {
	AggregatedTrustRelations(ctx context.Context, avatar string) ([]index.AggregatedTrustRelation, error)
	TrustRelations(avatar string, pageSize int) index.Pager[index.TrustRelationRow]
}

// MembershipSource exposes explicit group membership records.
type MembershipSource interface {
	GroupMemberships(group string, pageSize int) index.Pager[index.MembershipRow]
	MembershipsOf(member string, pageSize int) index.Pager[index.MembershipRow]
}

// walk drains p. Rows read before a failure are returned with the error.
func walk[T any](ctx context.Context, p index.Pager[T], maxPages int) ([]T, error) {
	var rows []T
	for page := 0; ; page++ {
		if maxPages > 0 && page >= maxPages {
			return rows, fmt.Errorf("pagination stopped after %d pages", maxPages)
		}
		more, err := p.NextPage(ctx)
		if err != nil {
			return rows, err
		}
		if !more {
			return rows, nil
		}
		rows = append(rows, p.Current()...)
	}
}
