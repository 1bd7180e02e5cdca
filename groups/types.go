package groups

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/tranvictor/circles-groups/common"
)

const (
	UnknownName   = "Unknown"
	UnknownSymbol = "Unknown"
)

// GroupRecord is what is known about a group. Address is canonical, every
// other field may be a placeholder.
type GroupRecord struct {
	Address       string `json:"address"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Description   string `json:"description"`
	Owner         string `json:"owner"`
	Service       string `json:"service"`
	FeeCollection string `json:"feeCollection"`
	Source        string `json:"source"`
}

// MemberSet is a deduplicated set of lowercase addresses.
type MemberSet map[string]struct{}

func NewMemberSet(addrs ...string) MemberSet {
	s := MemberSet{}
	s.Add(addrs...)
	return s
}

// Add ignores empty strings.
func (s MemberSet) Add(addrs ...string) {
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		s[a] = struct{}{}
	}
}

func (s MemberSet) Contains(addr string) bool {
	_, found := s[strings.ToLower(strings.TrimSpace(addr))]
	return found
}

func (s MemberSet) Len() int {
	return len(s)
}

func (s MemberSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// TrustEdge is one trust relation of a group. A zero Limit means unlimited.
type TrustEdge struct {
	From  string
	To    string
	Limit *big.Int
}

func (e TrustEdge) Unlimited() bool {
	return e.Limit == nil || e.Limit.Sign() == 0
}

func canonical(addr string) (string, error) {
	a, err := common.NormalizeAddress(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return a, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
