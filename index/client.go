package index

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	DefaultPageSize = 1000
	// TrustPageSize is smaller since trust rows are requested per avatar and
	// large groups return many of them.
	TrustPageSize = 200

	methodNotFound = -32601
)

// ErrNotSupported is returned when the index does not implement an optional
// method.
var ErrNotSupported = errors.New("method not supported by the index")

type caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Client talks to the Circles index over JSON-RPC.
type Client struct {
	url string
	rpc caller
	raw *rpc.Client
}

func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to circles index %s: %w", url, err)
	}
	return &Client{url: url, rpc: c, raw: c}, nil
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) Close() {
	if c.raw != nil {
		c.raw.Close()
	}
}

// GroupQuery narrows FindGroups. Zero fields do not filter.
type GroupQuery struct {
	OwnerEquals    string
	NameStartsWith string
	GroupAddressIn []string
}

func (q GroupQuery) filters() []Filter {
	filters := []Filter{}
	if q.OwnerEquals != "" {
		filters = append(filters, Equals("owner", strings.ToLower(q.OwnerEquals)))
	}
	if q.NameStartsWith != "" {
		filters = append(filters, Pred(FilterLike, "name", q.NameStartsWith+"%"))
	}
	if len(q.GroupAddressIn) > 0 {
		lowered := make([]string, len(q.GroupAddressIn))
		for i, a := range q.GroupAddressIn {
			lowered[i] = strings.ToLower(a)
		}
		filters = append(filters, Pred(FilterIn, "group", lowered))
	}
	return filters
}

// FindGroups returns at most limit groups matching q, newest first.
func (c *Client) FindGroups(ctx context.Context, limit int, q GroupQuery) ([]GroupRow, error) {
	params := QueryParams{
		Namespace: "V_CrcV2",
		Table:     "Groups",
		Filter:    q.filters(),
		Order:     newestFirst,
		Limit:     limit,
	}
	return runQuery[GroupRow](ctx, c.rpc, params)
}

// TrustRelations pages every v2 trust event where avatar is truster or
// trustee.
func (c *Client) TrustRelations(avatar string, pageSize int) Pager[TrustRelationRow] {
	a := strings.ToLower(avatar)
	params := QueryParams{
		Namespace: "V_Crc",
		Table:     "TrustRelations",
		Filter: []Filter{
			And(
				Equals("version", 2),
				Or(Equals("trustee", a), Equals("truster", a)),
			),
		},
	}
	return newQuery[TrustRelationRow](c.rpc, params, pageSize)
}

// AggregatedTrustRelations returns ErrNotSupported when the index does not
// expose the aggregated view.
func (c *Client) AggregatedTrustRelations(ctx context.Context, avatar string) ([]AggregatedTrustRelation, error) {
	var rels []AggregatedTrustRelation
	err := c.rpc.CallContext(ctx, &rels, "circles_getAggregatedTrustRelations", strings.ToLower(avatar))
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == methodNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotSupported, err)
		}
		return nil, fmt.Errorf("circles_getAggregatedTrustRelations: %w", err)
	}
	return rels, nil
}

// GroupMemberships pages the membership records of group.
func (c *Client) GroupMemberships(group string, pageSize int) Pager[MembershipRow] {
	params := QueryParams{
		Namespace: "V_CrcV2",
		Table:     "GroupMemberships",
		Filter:    []Filter{Equals("group", strings.ToLower(group))},
	}
	return newQuery[MembershipRow](c.rpc, params, pageSize)
}

// MembershipsOf pages the groups member belongs to.
func (c *Client) MembershipsOf(member string, pageSize int) Pager[MembershipRow] {
	params := QueryParams{
		Namespace: "V_CrcV2",
		Table:     "GroupMemberships",
		Filter:    []Filter{Equals("member", strings.ToLower(member))},
	}
	return newQuery[MembershipRow](c.rpc, params, pageSize)
}
