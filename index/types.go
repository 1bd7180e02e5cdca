package index

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Int64 decodes index values that may arrive as JSON numbers or strings.
// Floats are accepted only when they hold an exact int64 value.
type Int64 int64

func (n *Int64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return fmt.Errorf("invalid integer %q: not a whole int64", s)
		}
		v = int64(f)
	}
	*n = Int64(v)
	return nil
}

// Uint256 decodes big integers sent as decimal or 0x strings. A missing
// value stays nil and reads as zero through Big.
type Uint256 struct {
	Int *big.Int
}

func (u *Uint256) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		u.Int = nil
		return nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return fmt.Errorf("invalid uint256 %q", s)
	}
	u.Int = v
	return nil
}

func (u Uint256) Big() *big.Int {
	if u.Int == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(u.Int)
}

// Cursor is the position of an event row. Rows are always returned newest
// first, ordered by these three columns.
type Cursor struct {
	BlockNumber      int64
	TransactionIndex int64
	LogIndex         int64
}

type position struct {
	BlockNumber      Int64 `json:"blockNumber"`
	Timestamp        Int64 `json:"timestamp"`
	TransactionIndex Int64 `json:"transactionIndex"`
	LogIndex         Int64 `json:"logIndex"`
}

func (p position) cursor() Cursor {
	return Cursor{
		BlockNumber:      int64(p.BlockNumber),
		TransactionIndex: int64(p.TransactionIndex),
		LogIndex:         int64(p.LogIndex),
	}
}

// Row is any event row that can be paged by cursor.
type Row interface {
	cursor() Cursor
}

// GroupRow is a registered group as indexed from the Hub. Fields the index
// does not return stay empty.
type GroupRow struct {
	position
	Group         string `json:"group"`
	Type          string `json:"type"`
	Owner         string `json:"owner"`
	MintPolicy    string `json:"mintPolicy"`
	MintHandler   string `json:"mintHandler"`
	Treasury      string `json:"treasury"`
	Service       string `json:"service"`
	FeeCollection string `json:"feeCollection"`
	MemberCount   Int64  `json:"memberCount"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
}

// TrustRelationRow is one raw trust event. Limit is absent for v2 rows.
type TrustRelationRow struct {
	position
	Version    Int64   `json:"version"`
	Truster    string  `json:"truster"`
	Trustee    string  `json:"trustee"`
	ExpiryTime Int64   `json:"expiryTime"`
	Limit      Uint256 `json:"limit"`
}

// AggregatedTrustRelation is the index's pre-folded view of an avatar's
// trust graph.
type AggregatedTrustRelation struct {
	SubjectAvatar string  `json:"subjectAvatar"`
	Relation      string  `json:"relation"`
	ObjectAvatar  string  `json:"objectAvatar"`
	Timestamp     Int64   `json:"timestamp"`
	Limit         Uint256 `json:"limit"`
}

// MembershipRow links a member to a group. The group* fields are only
// filled by index versions that join group metadata.
type MembershipRow struct {
	position
	Group            string `json:"group"`
	Member           string `json:"member"`
	ExpiryTime       Int64  `json:"expiryTime"`
	GroupName        string `json:"groupName"`
	GroupSymbol      string `json:"groupSymbol"`
	GroupDescription string `json:"groupDescription"`
}
