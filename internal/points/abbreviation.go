package points

import "github.com/shopspring/decimal"

type Group int

const (
	GroupOne   Group = 1
	GroupTwo   Group = 2
	GroupThree Group = 3
)

func (g Group) Valid() bool {
	return g >= GroupOne && g <= GroupThree
}

type GroupedEntry struct {
	Points decimal.Decimal
	Group  Group
}

// GroupedTable is the secondary-family reference table, keyed by
// abbreviation. Absent abbreviations are unverified.
type GroupedTable map[string]GroupedEntry

type AbbreviationSets struct {
	// CompletionSets are subsets of group two, each worth a fixed bonus when
	// fully held.
	CompletionSets [][]string
}

type groupTally struct {
	points decimal.Decimal
	count  int
}

// ScoreAbbreviations scores secondary-family holdings. held has one
// abbreviation per held item.
func ScoreAbbreviations(held []string, table GroupedTable, sets AbbreviationSets) Score {
	score := ZeroScore()
	if len(held) == 0 {
		return score
	}

	tallies := map[Group]*groupTally{
		GroupOne:   {points: decimal.Zero},
		GroupTwo:   {points: decimal.Zero},
		GroupThree: {points: decimal.Zero},
	}
	heldAbbreviations := make(keySet)
	for _, abbr := range held {
		entry, ok := table[abbr]
		if !ok || !entry.Group.Valid() {
			continue
		}
		heldAbbreviations[abbr] = struct{}{}
		score.BasePoints = score.BasePoints.Add(entry.Points)
		tally := tallies[entry.Group]
		tally.points = tally.points.Add(entry.Points)
		tally.count++
	}

	g1, g2, g3 := tallies[GroupOne], tallies[GroupTwo], tallies[GroupThree]

	score.Bonus.GroupOne = decimal.NewFromInt(int64(g1.count)).Add(fivePercent.Mul(g1.points))

	for _, subset := range sets.CompletionSets {
		if len(subset) > 0 && heldAbbreviations.containsAll(subset) {
			score.Bonus.GroupTwoCompletion = score.Bonus.GroupTwoCompletion.Add(halfPoint)
		}
	}
	groupTwoPoints := g2.points.Add(score.Bonus.GroupTwoCompletion)

	beforeCross := g1.points.Add(score.Bonus.GroupOne).Add(groupTwoPoints).Add(g3.points)

	// g2.count > 0 means at least one verified abbreviation of the group two
	// reference set is held.
	total := beforeCross
	if g1.count > 0 && g2.count > 0 && g3.count > 0 {
		total = beforeCross.Mul(crossPremium)
		score.Bonus.CrossGroup = total.Sub(beforeCross)
	}

	score.TotalPoints = total
	return score
}
