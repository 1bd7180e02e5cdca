package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/index"
)

const DefaultMaxPages = 10000

// Aggregator reconstructs group membership from the trust graph and the
// explicit membership records, which the index maintains independently and
// which may each be incomplete.
type Aggregator struct {
	trust       TrustSource
	memberships MembershipSource

	MemberPageSize int
	TrustPageSize  int
	// MaxPages bounds every pagination walk.
	MaxPages int

	log zerolog.Logger
}

func NewAggregator(trust TrustSource, memberships MembershipSource, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		trust:          trust,
		memberships:    memberships,
		MemberPageSize: index.DefaultPageSize,
		TrustPageSize:  index.TrustPageSize,
		MaxPages:       DefaultMaxPages,
		log:            log,
	}
}

// ListMembers returns the union of every avatar in a trust relation with the
// group and every recorded member. It fails only when both the trust paths
// and the membership records failed.
func (a *Aggregator) ListMembers(ctx context.Context, group string) (MemberSet, error) {
	addr, err := canonical(group)
	if err != nil {
		return nil, err
	}

	trusted := a.trustParticipants(ctx, addr)
	recorded := a.recordedMembers(ctx, addr)

	if !trusted.ok() && !recorded.ok() {
		return nil, fmt.Errorf("%w: members of %s: %w", ErrTotalFailure, addr, errors.Join(trusted.Err, recorded.Err))
	}
	if !recorded.ok() {
		a.log.Debug().Err(recorded.Err).Str("group", addr).Msg("membership records unavailable, using trust relations only")
	}
	if !trusted.ok() {
		a.log.Debug().Err(trusted.Err).Str("group", addr).Msg("trust relations unavailable, using membership records only")
	}

	members := NewMemberSet()
	members.Add(trusted.Value...)
	members.Add(recorded.Value...)
	return members, nil
}

// ListTrustEdges returns every trust relation of the group unfiltered.
func (a *Aggregator) ListTrustEdges(ctx context.Context, group string) ([]TrustEdge, error) {
	addr, err := canonical(group)
	if err != nil {
		return nil, err
	}

	rels, aggErr := a.trust.AggregatedTrustRelations(ctx, addr)
	if aggErr == nil {
		edges := make([]TrustEdge, 0, len(rels))
		for _, r := range rels {
			edges = append(edges, TrustEdge{From: strings.ToLower(r.SubjectAvatar), To: strings.ToLower(r.ObjectAvatar), Limit: r.Limit.Big()})
		}
		return edges, nil
	}
	a.logAggregatedFallback(aggErr, addr)

	rows, err := walk(ctx, a.trust.TrustRelations(addr, a.TrustPageSize), a.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("%w: trust edges of %s: %w", ErrTotalFailure, addr, errors.Join(aggErr, err))
	}
	edges := make([]TrustEdge, 0, len(rows))
	for _, r := range rows {
		edges = append(edges, TrustEdge{From: strings.ToLower(r.Truster), To: strings.ToLower(r.Trustee), Limit: r.Limit.Big()})
	}
	return edges, nil
}

// GroupsOf lists the groups member has a membership record in.
func (a *Aggregator) GroupsOf(ctx context.Context, member string) ([]string, error) {
	addr, err := canonical(member)
	if err != nil {
		return nil, err
	}
	rows, err := walk(ctx, a.memberships.MembershipsOf(addr, a.MemberPageSize), a.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("memberships of %s: %w", addr, err)
	}
	seen := NewMemberSet()
	out := []string{}
	for _, r := range rows {
		g := strings.ToLower(r.Group)
		if g == "" || seen.Contains(g) {
			continue
		}
		seen.Add(g)
		out = append(out, g)
	}
	return out, nil
}

// trustParticipants tries the aggregated view first and falls back to the
// raw relation events.
func (a *Aggregator) trustParticipants(ctx context.Context, addr string) sourceResult[[]string] {
	rels, aggErr := a.trust.AggregatedTrustRelations(ctx, addr)
	if aggErr == nil {
		out := make([]string, 0, 2*len(rels))
		for _, r := range rels {
			out = append(out, r.SubjectAvatar, r.ObjectAvatar)
		}
		return sourceResult[[]string]{Value: out}
	}
	a.logAggregatedFallback(aggErr, addr)

	rows, err := walk(ctx, a.trust.TrustRelations(addr, a.TrustPageSize), a.MaxPages)
	out := make([]string, 0, 2*len(rows))
	for _, r := range rows {
		out = append(out, r.Truster, r.Trustee)
	}
	if err != nil {
		return sourceResult[[]string]{Value: out, Err: errors.Join(aggErr, err)}
	}
	return sourceResult[[]string]{Value: out}
}

func (a *Aggregator) recordedMembers(ctx context.Context, addr string) sourceResult[[]string] {
	rows, err := walk(ctx, a.memberships.GroupMemberships(addr, a.MemberPageSize), a.MaxPages)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Member)
	}
	return sourceResult[[]string]{Value: out, Err: err}
}

func (a *Aggregator) logAggregatedFallback(err error, addr string) {
	ev := a.log.Debug().Str("group", addr)
	if errors.Is(err, index.ErrNotSupported) {
		ev.Msg("aggregated trust relations not supported, paging raw relations")
		return
	}
	ev.Err(err).Msg("aggregated trust relations failed, paging raw relations")
}
