package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/index"
)

type ResolutionStatus int

const (
	Unresolved ResolutionStatus = iota
	Resolved
)

func (s ResolutionStatus) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "unresolved"
}

// Resolution is the outcome of ResolveNewGroup. NameConfirmed is false when
// only the owner-latest fallback matched, the address then belongs to the
// submitter's newest group which may not be the one just registered.
type Resolution struct {
	Status        ResolutionStatus
	Address       string
	NameConfirmed bool
	MatchedName   string
	Strategy      string
	// Cause joins the query errors when every strategy failed outright
	// rather than finding nothing.
	Cause error
}

// Strategy is one lookup attempt against the index, all filtered by owner
// and ordered newest first.
type Strategy struct {
	Name string
	// NamePrefix filters rows by the intended name as a prefix.
	NamePrefix bool
	Limit      int
	// ExactName only accepts rows whose name equals the intended name.
	ExactName bool
}

// DefaultStrategies widen the search step by step and end with the newest
// group of the owner regardless of name.
var DefaultStrategies = []Strategy{
	{Name: "owner-and-name", NamePrefix: true, Limit: 1, ExactName: true},
	{Name: "owner-recent-10", Limit: 10, ExactName: true},
	{Name: "owner-recent-20", Limit: 20, ExactName: true},
	{Name: "owner-latest", Limit: 1},
}

// Resolver locates the address of a freshly registered group in the index,
// which lags the chain by a few seconds.
type Resolver struct {
	querier      GroupQuerier
	IndexingWait time.Duration
	Strategies   []Strategy
	log          zerolog.Logger
}

func NewResolver(querier GroupQuerier, indexingWait time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		querier:      querier,
		IndexingWait: indexingWait,
		Strategies:   DefaultStrategies,
		log:          log,
	}
}

// ResolveNewGroup waits IndexingWait once, then runs the strategies in order
// and returns the first hit. Query failures count as "found nothing", so the
// only errors are an invalid submitter and ctx cancellation.
func (r *Resolver) ResolveNewGroup(ctx context.Context, submitter, intendedName string) (Resolution, error) {
	owner, err := common.NormalizeAddress(submitter)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: submitter: %w", ErrInvalidInput, err)
	}
	if err := sleep(ctx, r.IndexingWait); err != nil {
		return Resolution{}, err
	}

	var failures []error
	for _, s := range r.Strategies {
		res := r.attempt(ctx, s, owner, intendedName)
		if !res.ok() {
			if ctx.Err() != nil {
				return Resolution{}, ctx.Err()
			}
			r.log.Debug().Err(res.Err).Str("strategy", s.Name).Str("owner", owner).Msg("group lookup failed")
			failures = append(failures, fmt.Errorf("%s: %w", s.Name, res.Err))
			continue
		}
		if res.Value.Status == Resolved {
			r.log.Debug().Str("strategy", s.Name).Str("group", res.Value.Address).Msg("group resolved")
			return res.Value, nil
		}
	}

	unresolved := Resolution{Status: Unresolved}
	if len(failures) == len(r.Strategies) && len(failures) > 0 {
		unresolved.Cause = fmt.Errorf("%w: %w", ErrTotalFailure, errors.Join(failures...))
	}
	return unresolved, nil
}

func (r *Resolver) attempt(ctx context.Context, s Strategy, owner, name string) sourceResult[Resolution] {
	q := index.GroupQuery{OwnerEquals: owner}
	if s.NamePrefix {
		q.NameStartsWith = name
	}
	rows, err := r.querier.FindGroups(ctx, s.Limit, q)
	if err != nil {
		return sourceResult[Resolution]{Err: err}
	}
	if s.Limit > 0 && len(rows) > s.Limit {
		rows = rows[:s.Limit]
	}
	for _, row := range rows {
		if strings.TrimSpace(row.Group) == "" {
			continue
		}
		if s.ExactName && row.Name != name {
			continue
		}
		return sourceResult[Resolution]{Value: Resolution{
			Status:        Resolved,
			Address:       strings.ToLower(row.Group),
			NameConfirmed: s.ExactName,
			MatchedName:   row.Name,
			Strategy:      s.Name,
		}}
	}
	return sourceResult[Resolution]{Value: Resolution{Status: Unresolved}}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
