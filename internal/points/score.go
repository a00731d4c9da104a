// Package points turns a list of held collectibles into a score. Everything in
// this package is pure: callers resolve holdings and reference tables first.
package points

import "github.com/shopspring/decimal"

var (
	fivePercent  = decimal.RequireFromString("0.05")
	tenPercent   = decimal.RequireFromString("0.10")
	halfPoint    = decimal.RequireFromString("0.5")
	crossPremium = decimal.RequireFromString("1.10")
)

// Table maps a category key to its base point value. A key absent from the
// table is unverified: it scores zero and never counts towards a set.
type Table map[string]decimal.Decimal

func (t Table) Lookup(key string) (decimal.Decimal, bool) {
	p, ok := t[key]
	return p, ok
}

// Bonus breaks the bonus part of a score down by rule. Rules that do not apply
// to the scored family stay zero.
type Bonus struct {
	SetOne             decimal.Decimal `json:"set_one"`
	SetTwo             decimal.Decimal `json:"set_two"`
	GroupOne           decimal.Decimal `json:"group_one"`
	GroupTwoCompletion decimal.Decimal `json:"group_two_completion"`
	CrossGroup         decimal.Decimal `json:"cross_group"`
}

type Score struct {
	TotalPoints decimal.Decimal `json:"total_points"`
	BasePoints  decimal.Decimal `json:"base_points"`
	Bonus       Bonus           `json:"bonus_breakdown"`
}

// ZeroScore is the score of an account holding nothing verified.
func ZeroScore() Score {
	return Score{
		TotalPoints: decimal.Zero,
		BasePoints:  decimal.Zero,
		Bonus: Bonus{
			SetOne:             decimal.Zero,
			SetTwo:             decimal.Zero,
			GroupOne:           decimal.Zero,
			GroupTwoCompletion: decimal.Zero,
			CrossGroup:         decimal.Zero,
		},
	}
}

type keySet map[string]struct{}

func newKeySet(keys []string) keySet {
	s := make(keySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s keySet) has(k string) bool {
	_, ok := s[k]
	return ok
}

func (s keySet) equals(other keySet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.has(k) {
			return false
		}
	}
	return true
}

func (s keySet) containsAll(keys []string) bool {
	for _, k := range keys {
		if !s.has(k) {
			return false
		}
	}
	return true
}
