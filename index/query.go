package index

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	FilterEquals   = "Equals"
	FilterLessThan = "LessThan"
	FilterLike     = "Like"
	FilterIn       = "In"

	ConjunctionAnd = "And"
	ConjunctionOr  = "Or"

	SortDesc = "DESC"
)

// Filter is either a FilterPredicate or a Conjunction.
type Filter any

type FilterPredicate struct {
	Type       string `json:"Type"`
	FilterType string `json:"FilterType"`
	Column     string `json:"Column"`
	Value      any    `json:"Value"`
}

type Conjunction struct {
	Type            string   `json:"Type"`
	ConjunctionType string   `json:"ConjunctionType"`
	Predicates      []Filter `json:"Predicates"`
}

func Pred(filterType, column string, value any) FilterPredicate {
	return FilterPredicate{Type: "FilterPredicate", FilterType: filterType, Column: column, Value: value}
}

func Equals(column string, value any) FilterPredicate {
	return Pred(FilterEquals, column, value)
}

func And(predicates ...Filter) Conjunction {
	return Conjunction{Type: "Conjunction", ConjunctionType: ConjunctionAnd, Predicates: predicates}
}

func Or(predicates ...Filter) Conjunction {
	return Conjunction{Type: "Conjunction", ConjunctionType: ConjunctionOr, Predicates: predicates}
}

type OrderBy struct {
	Column    string `json:"Column"`
	SortOrder string `json:"SortOrder"`
}

// QueryParams is the single argument of circles_query. An empty Columns
// list selects every column of the table.
type QueryParams struct {
	Namespace string    `json:"Namespace"`
	Table     string    `json:"Table"`
	Columns   []string  `json:"Columns"`
	Filter    []Filter  `json:"Filter"`
	Order     []OrderBy `json:"Order"`
	Limit     int       `json:"Limit,omitempty"`
}

type queryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

var newestFirst = []OrderBy{
	{Column: "blockNumber", SortOrder: SortDesc},
	{Column: "transactionIndex", SortOrder: SortDesc},
	{Column: "logIndex", SortOrder: SortDesc},
}

// olderThan selects rows strictly after c in newest-first order.
func olderThan(c Cursor) Filter {
	return Or(
		Pred(FilterLessThan, "blockNumber", c.BlockNumber),
		And(
			Equals("blockNumber", c.BlockNumber),
			Pred(FilterLessThan, "transactionIndex", c.TransactionIndex),
		),
		And(
			Equals("blockNumber", c.BlockNumber),
			Equals("transactionIndex", c.TransactionIndex),
			Pred(FilterLessThan, "logIndex", c.LogIndex),
		),
	)
}

// decodeRows maps the column/row matrix onto T through its json tags.
func decodeRows[T any](res queryResult) ([]T, error) {
	out := make([]T, 0, len(res.Rows))
	for i, raw := range res.Rows {
		if len(raw) != len(res.Columns) {
			return nil, fmt.Errorf("row %d has %d values for %d columns", i, len(raw), len(res.Columns))
		}
		obj := make(map[string]any, len(raw))
		for j, col := range res.Columns {
			obj[col] = raw[j]
		}
		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("couldn't re-encode row %d: %w", i, err)
		}
		var row T
		if err := json.Unmarshal(encoded, &row); err != nil {
			return nil, fmt.Errorf("couldn't decode row %d: %w", i, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func runQuery[T any](ctx context.Context, c caller, params QueryParams) ([]T, error) {
	if params.Filter == nil {
		params.Filter = []Filter{}
	}
	if params.Columns == nil {
		params.Columns = []string{}
	}
	var res queryResult
	if err := c.CallContext(ctx, &res, "circles_query", params); err != nil {
		return nil, fmt.Errorf("circles_query %s.%s: %w", params.Namespace, params.Table, err)
	}
	return decodeRows[T](res)
}

// Pager walks a paginated result. NextPage fetches the next page and
// reports false once the source is exhausted. Current holds the rows of the
// page fetched last.
type Pager[T any] interface {
	NextPage(ctx context.Context) (bool, error)
	Current() []T
}

// Query is a cursor based Pager over one circles_query table.
type Query[T Row] struct {
	client   caller
	params   QueryParams
	pageSize int
	cursor   *Cursor
	current  []T
	done     bool
}

func newQuery[T Row](c caller, params QueryParams, pageSize int) *Query[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	params.Order = newestFirst
	params.Limit = pageSize
	return &Query[T]{client: c, params: params, pageSize: pageSize}
}

func (q *Query[T]) NextPage(ctx context.Context) (bool, error) {
	if q.done {
		return false, nil
	}
	params := q.params
	if q.cursor != nil {
		params.Filter = append(append([]Filter{}, q.params.Filter...), olderThan(*q.cursor))
	}
	rows, err := runQuery[T](ctx, q.client, params)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		q.done = true
		q.current = nil
		return false, nil
	}
	if len(rows) < q.pageSize {
		q.done = true
	}
	last := rows[len(rows)-1].cursor()
	if q.cursor != nil && last == *q.cursor {
		q.done = true
		return false, fmt.Errorf("%s.%s: cursor did not advance past %+v", q.params.Namespace, q.params.Table, last)
	}
	q.cursor = &last
	q.current = rows
	return true, nil
}

func (q *Query[T]) Current() []T {
	return q.current
}
