package points

import "github.com/shopspring/decimal"

// TaxonomySets are the two disjoint category sets of the primary family.
type TaxonomySets struct {
	SetOne []string
	SetTwo []string
}

// ScoreTaxonomy scores primary-family holdings. held has one category key per
// held item, so a key may repeat.
//
// A set bonus applies only when the distinct verified categories held are
// exactly that set:
//
//	set one: |SetOne| + 0.05 * points of items in SetOne
//	set two: 0.10 * basePoints
func ScoreTaxonomy(held []string, table Table, sets TaxonomySets) Score {
	score := ZeroScore()
	if len(held) == 0 {
		return score
	}

	setOne := newKeySet(sets.SetOne)
	setTwo := newKeySet(sets.SetTwo)

	heldCategories := make(keySet)
	setOnePoints := decimal.Zero
	for _, key := range held {
		p, ok := table.Lookup(key)
		if !ok {
			continue
		}
		heldCategories[key] = struct{}{}
		score.BasePoints = score.BasePoints.Add(p)
		if setOne.has(key) {
			setOnePoints = setOnePoints.Add(p)
		}
	}

	if len(setOne) > 0 && heldCategories.equals(setOne) {
		score.Bonus.SetOne = decimal.NewFromInt(int64(len(setOne))).Add(fivePercent.Mul(setOnePoints))
	}
	if len(setTwo) > 0 && heldCategories.equals(setTwo) {
		score.Bonus.SetTwo = tenPercent.Mul(score.BasePoints)
	}

	score.TotalPoints = score.BasePoints.Add(score.Bonus.SetOne).Add(score.Bonus.SetTwo)
	return score
}
