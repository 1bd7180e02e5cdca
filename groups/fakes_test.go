package groups_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/tranvictor/circles-groups/index"
)

type findCall struct {
	Limit int
	Query index.GroupQuery
}

// fakeQuerier answers FindGroups through respond and records each call.
type fakeQuerier struct {
	mu      sync.Mutex
	calls   []findCall
	respond func(call findCall) ([]index.GroupRow, error)
}

func (f *fakeQuerier) FindGroups(ctx context.Context, limit int, q index.GroupQuery) ([]index.GroupRow, error) {
	f.mu.Lock()
	call := findCall{Limit: limit, Query: q}
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return f.respond(call)
}

// fakePager serves fixed pages, then optionally fails at failAt.
type fakePager[T any] struct {
	pages   [][]T
	failAt  int
	failErr error
	next    int
	current []T
	// endless keeps returning the last page forever.
	endless bool
}

func (p *fakePager[T]) NextPage(ctx context.Context) (bool, error) {
	if p.failErr != nil && p.next == p.failAt {
		return false, p.failErr
	}
	if p.next >= len(p.pages) {
		if p.endless && len(p.pages) > 0 {
			p.current = p.pages[len(p.pages)-1]
			return true, nil
		}
		p.current = nil
		return false, nil
	}
	p.current = p.pages[p.next]
	p.next++
	return true, nil
}

func (p *fakePager[T]) Current() []T {
	return p.current
}

// fakeTrust builds a fresh pager per call so repeated reads see the same data.
type fakeTrust struct {
	aggregated    []index.AggregatedTrustRelation
	aggregatedErr error
	pages         [][]index.TrustRelationRow
	pageErr       error
	pageFailAt    int
	endless       bool

	aggregatedCalls int
	pagedCalls      int
}

func (f *fakeTrust) AggregatedTrustRelations(ctx context.Context, avatar string) ([]index.AggregatedTrustRelation, error) {
	f.aggregatedCalls++
	if f.aggregatedErr != nil {
		return nil, f.aggregatedErr
	}
	return f.aggregated, nil
}

func (f *fakeTrust) TrustRelations(avatar string, pageSize int) index.Pager[index.TrustRelationRow] {
	f.pagedCalls++
	return &fakePager[index.TrustRelationRow]{
		pages:   f.pages,
		failAt:  f.pageFailAt,
		failErr: f.pageErr,
		endless: f.endless,
	}
}

type fakeMemberships struct {
	pages      [][]index.MembershipRow
	pageErr    error
	pageFailAt int
	endless    bool

	byMember map[string][][]index.MembershipRow
}

func (f *fakeMemberships) GroupMemberships(group string, pageSize int) index.Pager[index.MembershipRow] {
	return &fakePager[index.MembershipRow]{
		pages:   f.pages,
		failAt:  f.pageFailAt,
		failErr: f.pageErr,
		endless: f.endless,
	}
}

func (f *fakeMemberships) MembershipsOf(member string, pageSize int) index.Pager[index.MembershipRow] {
	return &fakePager[index.MembershipRow]{pages: f.byMember[member]}
}

func trustRow(truster, trustee string, limit int64) index.TrustRelationRow {
	r := index.TrustRelationRow{Truster: truster, Trustee: trustee}
	if limit != 0 {
		r.Limit = index.Uint256{Int: big.NewInt(limit)}
	}
	return r
}

func memberRow(member string) index.MembershipRow {
	return index.MembershipRow{Member: member}
}
