package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/evm"
	"github.com/anonymousnfts/stake-reward-service/internal/db"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/tracing"
	"github.com/anonymousnfts/stake-reward-service/internal/points"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type AccountScorePublic struct {
	Address string       `json:"address"`
	Family  string       `json:"family"`
	Score   points.Score `json:"score"`
}

type VerificationPublic struct {
	AccountScorePublic
	Period string `json:"period"`
}

// GetAccountScore scores the collectibles currently held by address.
func (s *Services) GetAccountScore(
	ctx context.Context, address string, family types.CollectibleFamily,
) (*AccountScorePublic, *types.Error) {
	var (
		score points.Score
		err   *types.Error
	)
	switch family {
	case types.PrimaryFamily:
		score, err = s.primaryScore(ctx, address)
	case types.SecondaryFamily:
		score, err = s.secondaryScore(ctx, address)
	default:
		return nil, types.NewValidationError(fmt.Sprintf("unknown collectible family %q", family))
	}
	if err != nil {
		return nil, err
	}
	return &AccountScorePublic{
		Address: address,
		Family:  family.ToString(),
		Score:   score,
	}, nil
}

// VerifyPrimaryAccount records the primary score of address for the current
// period. An account is verified at most once per period.
func (s *Services) VerifyPrimaryAccount(ctx context.Context, address string) (*VerificationPublic, *types.Error) {
	score, err := s.primaryScore(ctx, address)
	if err != nil {
		return nil, err
	}
	if !score.TotalPoints.IsPositive() {
		return nil, types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, "account holds no verified collectibles")
	}

	period := s.currentPeriod().String()
	if dbErr := s.DbClient.SavePrimaryVerification(ctx, address, score.TotalPoints.String(), period); dbErr != nil {
		return nil, verificationError(ctx, dbErr)
	}
	log.Ctx(ctx).Info().Str("address", address).Str("period", period).
		Str("points", score.TotalPoints.String()).Msg("primary account verified")

	return &VerificationPublic{
		AccountScorePublic: AccountScorePublic{
			Address: address,
			Family:  types.PrimaryFamily.ToString(),
			Score:   score,
		},
		Period: period,
	}, nil
}

// VerifySecondaryAccount records the secondary score of address for the
// current period. A secondary address not linked yet is linked to
// primaryAddress, which must already be verified; once linked,
// primaryAddress may be omitted.
func (s *Services) VerifySecondaryAccount(
	ctx context.Context, address, primaryAddress string,
) (*VerificationPublic, *types.Error) {
	if primaryAddress != "" && !utils.IsValidXrplAddress(primaryAddress) {
		return nil, types.NewValidationError(fmt.Sprintf("invalid primary address %q", primaryAddress))
	}
	score, err := s.secondaryScore(ctx, address)
	if err != nil {
		return nil, err
	}
	if !score.TotalPoints.IsPositive() {
		return nil, types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, "account holds no verified collectibles")
	}

	period := s.currentPeriod().String()
	dbErr := s.DbClient.SaveSecondaryVerification(ctx, address, primaryAddress, score.TotalPoints.String(), period)
	if dbErr != nil {
		return nil, verificationError(ctx, dbErr)
	}
	log.Ctx(ctx).Info().Str("address", address).Str("primary", primaryAddress).Str("period", period).
		Str("points", score.TotalPoints.String()).Msg("secondary account verified")

	return &VerificationPublic{
		AccountScorePublic: AccountScorePublic{
			Address: address,
			Family:  types.SecondaryFamily.ToString(),
			Score:   score,
		},
		Period: period,
	}, nil
}

func verificationError(ctx context.Context, err error) *types.Error {
	switch {
	case db.IsDuplicateKeyError(err):
		return types.NewErrorWithMsg(http.StatusForbidden, types.Forbidden, err.Error())
	case db.IsNotFoundError(err):
		return types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, err.Error())
	default:
		log.Ctx(ctx).Error().Err(err).Msg("failed to save verification")
		return types.NewPersistenceError(err)
	}
}

func (s *Services) primaryScore(ctx context.Context, address string) (points.Score, *types.Error) {
	if !utils.IsValidXrplAddress(address) {
		return points.Score{}, types.NewValidationError(fmt.Sprintf("invalid address %q", address))
	}
	nfts, err := s.Ledger.GetAccountNFTs(ctx, address)
	if err != nil {
		if err.ErrorCode == types.NotFound {
			return points.ZeroScore(), nil
		}
		return points.Score{}, err
	}

	collectibles, dbErr := s.DbClient.FindPrimaryCollectibles(ctx)
	if dbErr != nil {
		return points.Score{}, types.NewPersistenceError(dbErr)
	}
	table := make(points.Table, len(collectibles))
	for _, c := range collectibles {
		p, pErr := decimal.NewFromString(c.Points)
		if pErr != nil {
			log.Ctx(ctx).Warn().Uint32("taxon", c.Taxon).Str("points", c.Points).Msg("ignoring collectible with invalid points")
			continue
		}
		table[taxonKey(c.Taxon)] = p
	}

	held := make([]string, 0, len(nfts))
	for _, nft := range nfts {
		if nft.Issuer != s.cfg.Treasury.NftIssuer {
			continue
		}
		held = append(held, taxonKey(nft.Taxon))
	}

	return points.ScoreTaxonomy(held, table, points.TaxonomySets{
		SetOne: s.params.PrimarySetOne,
		SetTwo: s.params.PrimarySetTwo,
	}), nil
}

func (s *Services) secondaryScore(ctx context.Context, address string) (points.Score, *types.Error) {
	if !utils.IsValidEvmAddress(address) {
		return points.Score{}, types.NewValidationError(fmt.Sprintf("invalid address %q", address))
	}
	collectibles, dbErr := s.DbClient.FindSecondaryCollectibles(ctx)
	if dbErr != nil {
		return points.Score{}, types.NewPersistenceError(dbErr)
	}

	table := make(points.GroupedTable)
	abbreviations := make(map[evm.TokenRef]string, len(collectibles))
	candidates := make([]evm.TokenRef, 0, len(collectibles))
	for _, c := range collectibles {
		p, pErr := decimal.NewFromString(c.Points)
		group := points.Group(c.Group)
		if pErr != nil || !group.Valid() {
			log.Ctx(ctx).Warn().Str("collectible", c.ID).Msg("ignoring collectible with invalid points or group")
			continue
		}
		if known, ok := table[c.Abbreviation]; !ok {
			table[c.Abbreviation] = points.GroupedEntry{Points: p, Group: group}
		} else if !known.Points.Equal(p) || known.Group != group {
			// the first row of an abbreviation wins
			log.Ctx(ctx).Warn().
				Str("collectible", c.ID).
				Str("abbreviation", c.Abbreviation).
				Str("points", p.String()).
				Str("keptPoints", known.Points.String()).
				Msg("inconsistent points for abbreviation")
		}
		ref := evm.TokenRef{Contract: c.ContractAddress, TokenID: c.TokenID}
		abbreviations[ref] = c.Abbreviation
		candidates = append(candidates, ref)
	}
	if len(candidates) == 0 {
		return points.ZeroScore(), nil
	}

	owned, spanErr := tracing.WrapWithSpan(ctx, "HeldTokens", func() ([]evm.TokenRef, error) {
		held, err := s.Ownership.HeldTokens(ctx, address, candidates)
		if err != nil {
			return nil, err
		}
		return held, nil
	})
	if spanErr != nil {
		var err *types.Error
		if errors.As(spanErr, &err) {
			return points.Score{}, err
		}
		return points.Score{}, types.NewInternalServiceError(spanErr)
	}
	held := make([]string, 0, len(owned))
	for _, ref := range owned {
		held = append(held, abbreviations[ref])
	}

	return points.ScoreAbbreviations(held, table, points.AbbreviationSets{
		CompletionSets: s.params.SecondaryCompletionSets,
	}), nil
}

func taxonKey(taxon uint32) string {
	return strconv.FormatUint(uint64(taxon), 10)
}
