package cmd

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/tranvictor/circles-groups/circles"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/ui"
)

const (
	testGroup  = "0x00000000000000000000000000000000000000b1"
	testWallet = "0x00000000000000000000000000000000000000a1"
)

// transcript joins every recorded value, one per line.
func transcript(u *ui.RecordingUI) string {
	var b strings.Builder
	for _, e := range u.Entries() {
		b.WriteString(e.Value)
		b.WriteString("\n")
	}
	return b.String()
}

func wei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestRenderGroupInfo(t *testing.T) {
	u := ui.NewRecordingUI()
	edges := []groups.TrustEdge{
		{From: testGroup, To: testWallet, Limit: big.NewInt(0)},
		{From: testWallet, To: testGroup, Limit: wei(10)},
	}
	renderGroupInfo(u, groupInfo{
		Record: groups.GroupRecord{
			Address: testGroup,
			Name:    "Berlin Bakers",
			Symbol:  "BAKE",
			Owner:   testWallet,
		},
		TokenName:     "Berlin Bakers",
		TokenSymbol:   "BAKE",
		TotalSupply:   wei(1234),
		Conditions:    []string{},
		Members:       groups.NewMemberSet(testWallet, testGroup),
		Stats:         groups.Stats(edges, 2),
		Wallet:        testWallet,
		WalletBalance: wei(5),
	})

	out := transcript(u)
	for _, want := range []string{
		"Address: " + testGroup,
		"Short name: none",
		"Service: Unknown",
		"Total supply: 1,234",
		"No conditions set.",
		"You are a member: yes",
		"Your balance: 5 BAKE",
		"Unlimited trusts: 1",
		"Average limit: 10",
		"Connectivity: 100.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderGroupInfoWithoutWalletOrConditions(t *testing.T) {
	u := ui.NewRecordingUI()
	renderGroupInfo(u, groupInfo{
		Record:  groups.GroupRecord{Address: testGroup, Name: groups.UnknownName, Symbol: groups.UnknownSymbol},
		Members: groups.NewMemberSet(),
		Stats:   groups.Stats(nil, 0),
	})
	out := transcript(u)
	if !strings.Contains(out, "Not available for this group.") {
		t.Errorf("expected conditions placeholder:\n%s", out)
	}
	if strings.Contains(out, "You are a member") || strings.Contains(out, "Connectivity") {
		t.Errorf("unexpected wallet or connectivity rows:\n%s", out)
	}
}

func TestRenderMembersJSON(t *testing.T) {
	u := ui.NewRecordingUI()
	members := groups.NewMemberSet(testWallet, testGroup, testWallet)
	if err := renderMembers(u, testGroup, members, true); err != nil {
		t.Fatalf("renderMembers: %v", err)
	}
	var dump membersDump
	if err := json.Unmarshal([]byte(u.Output()), &dump); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, u.Output())
	}
	if dump.Count != 2 || dump.Members[0] != testWallet || dump.Group != testGroup {
		t.Fatalf("unexpected dump %+v", dump)
	}
}

func TestRenderMembersEmpty(t *testing.T) {
	u := ui.NewRecordingUI()
	if err := renderMembers(u, testGroup, groups.NewMemberSet(), false); err != nil {
		t.Fatalf("renderMembers: %v", err)
	}
	if !u.HasMessage("no members yet") {
		t.Fatalf("expected empty message, got %v", u.Entries())
	}
}

func TestRenderGroupListShowsLocalGroups(t *testing.T) {
	u := ui.NewRecordingUI()
	renderGroupList(u, testWallet, nil, []groups.GroupRecord{{Address: testGroup, Name: "Berlin Bakers", Symbol: "BAKE"}})
	out := transcript(u)
	if !strings.Contains(out, "Not a member of any group.") || !strings.Contains(out, "Berlin Bakers | BAKE | "+testGroup) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestReportUnresolved(t *testing.T) {
	u := ui.NewRecordingUI()
	reportUnresolved(u, groups.Resolution{Status: groups.Unresolved}, testWallet)
	if len(u.WarnMessages()) != 1 || !u.HasMessage("cg list-groups -u "+testWallet) {
		t.Fatalf("unexpected output %v", u.Entries())
	}
}

func TestReportResolvedWarnsOnUnconfirmedName(t *testing.T) {
	u := ui.NewRecordingUI()
	reportResolved(u, groups.Resolution{Status: groups.Resolved, Address: testGroup, MatchedName: "Other"})
	if len(u.WarnMessages()) != 1 {
		t.Fatalf("expected a warning, got %v", u.Entries())
	}
	u = ui.NewRecordingUI()
	reportResolved(u, groups.Resolution{Status: groups.Resolved, Address: testGroup, NameConfirmed: true})
	if len(u.WarnMessages()) != 0 {
		t.Fatalf("unexpected warning %v", u.WarnMessages())
	}
}

func TestBatchExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, err := batchExpiry(0, now)
	if err != nil || e.Cmp(circles.MaxExpiry) != 0 {
		t.Fatalf("zero expiry = %v, %v", e, err)
	}
	if _, err := batchExpiry(now.Unix(), now); err == nil {
		t.Fatalf("expected past expiry to fail")
	}
	e, err = batchExpiry(now.Unix()+60, now)
	if err != nil || e.Int64() != now.Unix()+60 {
		t.Fatalf("future expiry = %v, %v", e, err)
	}
}
