package types

import (
	"encoding/json"
	"fmt"
	"os"
)

// secondaryCompletionSetCount is the number of G2 subsets that each grant a
// completion bonus.
const secondaryCompletionSetCount = 3

// PointsParams holds the set definitions used by the bonus calculation. Point
// values themselves live in the collectible reference tables of the store.
type PointsParams struct {
	// PrimarySetOne and PrimarySetTwo are disjoint NFToken taxon sets.
	PrimarySetOne []string `json:"primary_set_one"`
	PrimarySetTwo []string `json:"primary_set_two"`
	// SecondaryCompletionSets are abbreviation subsets of group two.
	SecondaryCompletionSets [][]string `json:"secondary_completion_sets"`
}

func NewPointsParams(filePath string) (*PointsParams, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var params PointsParams
	err = json.Unmarshal(data, &params)
	if err != nil {
		return nil, err
	}
	err = ValidatePointsParams(&params)
	if err != nil {
		return nil, err
	}

	return &params, nil
}

// ValidatePointsParams checks the set definitions are non-empty, free of
// duplicates and that the two primary sets are disjoint.
func ValidatePointsParams(p *PointsParams) error {
	if len(p.PrimarySetOne) == 0 || len(p.PrimarySetTwo) == 0 {
		return fmt.Errorf("primary bonus sets cannot be empty")
	}

	seen := make(map[string]string)
	for name, set := range map[string][]string{
		"primary_set_one": p.PrimarySetOne,
		"primary_set_two": p.PrimarySetTwo,
	} {
		for _, key := range set {
			if key == "" {
				return fmt.Errorf("%s contains an empty taxon", name)
			}
			if owner, ok := seen[key]; ok {
				return fmt.Errorf("taxon %s appears in both %s and %s", key, owner, name)
			}
			seen[key] = name
		}
	}

	if len(p.SecondaryCompletionSets) != secondaryCompletionSetCount {
		return fmt.Errorf(
			"expected %d secondary completion sets, got %d",
			secondaryCompletionSetCount, len(p.SecondaryCompletionSets),
		)
	}
	for i, set := range p.SecondaryCompletionSets {
		if len(set) == 0 {
			return fmt.Errorf("secondary completion set %d is empty", i)
		}
		unique := make(map[string]struct{}, len(set))
		for _, abbr := range set {
			if abbr == "" {
				return fmt.Errorf("secondary completion set %d contains an empty abbreviation", i)
			}
			if _, ok := unique[abbr]; ok {
				return fmt.Errorf("secondary completion set %d repeats %s", i, abbr)
			}
			unique[abbr] = struct{}{}
		}
	}

	return nil
}
