package groups_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/index"
)

func TestLookupByAddress(t *testing.T) {
	q := &fakeQuerier{respond: func(c findCall) ([]index.GroupRow, error) {
		if len(c.Query.GroupAddressIn) == 1 {
			return []index.GroupRow{{Group: groupAddr, Name: "Builders", Symbol: "BLD", Owner: "0xOWNER"}}, nil
		}
		t.Fatalf("broader lookups not expected")
		return nil, nil
	}}
	rec, err := groups.NewDirectory(q, &fakeMemberships{}, zerolog.Nop()).Lookup(context.Background(), groupAddr)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Name != "Builders" || rec.Symbol != "BLD" || rec.Owner != "0xowner" || rec.Source != "index" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLookupScansRecentGroups(t *testing.T) {
	q := &fakeQuerier{respond: func(c findCall) ([]index.GroupRow, error) {
		if len(c.Query.GroupAddressIn) == 1 {
			return nil, errors.New("filter unsupported")
		}
		if c.Limit != groups.RecentGroupsScan {
			t.Fatalf("unexpected scan size %d", c.Limit)
		}
		return []index.GroupRow{{Group: "0x01"}, {Group: groupAddr, Name: ""}}, nil
	}}
	rec, err := groups.NewDirectory(q, &fakeMemberships{}, zerolog.Nop()).Lookup(context.Background(), groupAddr)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Source != "recent-groups" || rec.Name != groups.UnknownName {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLookupFallsBackToMembershipThenPlaceholders(t *testing.T) {
	q := &fakeQuerier{respond: func(c findCall) ([]index.GroupRow, error) {
		return nil, nil
	}}
	records := &fakeMemberships{pages: [][]index.MembershipRow{{{Group: groupAddr, GroupName: "Club", GroupSymbol: "CLB"}}}}
	rec, err := groups.NewDirectory(q, records, zerolog.Nop()).Lookup(context.Background(), groupAddr)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Name != "Club" || rec.Symbol != "CLB" || rec.Source != "membership" {
		t.Fatalf("unexpected record %+v", rec)
	}

	rec, err = groups.NewDirectory(q, &fakeMemberships{}, zerolog.Nop()).Lookup(context.Background(), groupAddr)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Address != groupAddr || rec.Name != groups.UnknownName || rec.Symbol != groups.UnknownSymbol {
		t.Fatalf("unexpected placeholder record %+v", rec)
	}
}
