package groups

import (
	"math/big"
)

// TrustStats summarises a group's trust edges.
type TrustStats struct {
	TotalConnections int
	UnlimitedTrusts  int
	LimitedTrusts    int
	// AverageLimit is the mean over limited edges only, zero when there are
	// none.
	AverageLimit *big.Float
	// Connectivity is the percentage of the n*(n-1) possible directed edges
	// among members that exist. Set only when HasConnectivity is true.
	Connectivity    float64
	HasConnectivity bool
}

func Stats(edges []TrustEdge, memberCount int) TrustStats {
	st := TrustStats{
		TotalConnections: len(edges),
		AverageLimit:     new(big.Float),
	}
	sum := new(big.Int)
	for _, e := range edges {
		if e.Unlimited() {
			st.UnlimitedTrusts++
			continue
		}
		st.LimitedTrusts++
		sum.Add(sum, e.Limit)
	}
	if st.LimitedTrusts > 0 {
		st.AverageLimit.Quo(new(big.Float).SetInt(sum), new(big.Float).SetInt64(int64(st.LimitedTrusts)))
	}
	if memberCount > 1 {
		possible := float64(memberCount) * float64(memberCount-1)
		st.Connectivity = float64(len(edges)) / possible * 100
		st.HasConnectivity = true
	}
	return st
}
