package recommend

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"venturelink/errs"
	"venturelink/metrics"
	"venturelink/models"
)

const (
	matchedLimit  = 20
	fallbackLimit = 10
)

// Result tags.
const (
	ResultMatched  = "matched"
	ResultFallback = "fallback"
)

// ProfileStore is the slice of the repository the recommendation service
// needs.
type ProfileStore interface {
	FindFounderByUser(ctx context.Context, userID primitive.ObjectID) (*models.FounderProfile, error)
	ListEligibleFounderCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]models.FounderProfile, error)
	ListRecentFounders(ctx context.Context, excludeUserID primitive.ObjectID, limit int) ([]models.FounderProfile, error)
	ListEligibleInvestorCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]models.InvestorProfile, error)
	ListRecentInvestors(ctx context.Context, excludeUserID primitive.ObjectID, limit int) ([]models.InvestorProfile, error)
}

// RankedFounder is a candidate founder with its score. Score is nil for
// fallback entries, which are recency-picked rather than scored.
type RankedFounder struct {
	Profile    models.FounderProfile `json:"profile"`
	MatchScore *int                  `json:"matchScore,omitempty"`
	Signals    *CofounderSignals     `json:"signals,omitempty"`
}

// RankedInvestor is a candidate investor with its score.
type RankedInvestor struct {
	Profile    models.InvestorProfile `json:"profile"`
	MatchScore *int                   `json:"matchScore,omitempty"`
	Signals    *InvestorSignals       `json:"signals,omitempty"`
}

type FounderResult struct {
	Type string          `json:"type"` // matched, fallback
	Data []RankedFounder `json:"data"`
}

type InvestorResult struct {
	Type string           `json:"type"` // matched, fallback
	Data []RankedInvestor `json:"data"`
}

type Service struct {
	store ProfileStore
	log   *zap.Logger
}

func NewService(store ProfileStore, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// RecommendFounders ranks co-founder candidates for the subject founder.
// The pool is every founder looking for a co-founder, excluding the subject;
// a score of 0 still counts as matched. Only an empty pool falls back to the
// most recent profiles.
func (s *Service) RecommendFounders(ctx context.Context, userID primitive.ObjectID) (*FounderResult, error) {
	subject, err := s.store.FindFounderByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, errs.InvalidState("founder profile required")
	}

	candidates, err := s.store.ListEligibleFounderCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedFounder, 0, len(candidates))
	for i := range candidates {
		score, sig := ScoreCofounder(subject, &candidates[i])
		sc, sg := score, sig
		ranked = append(ranked, RankedFounder{
			Profile:    candidates[i],
			MatchScore: &sc,
			Signals:    &sg,
		})
	}

	if len(ranked) == 0 {
		recent, err := s.store.ListRecentFounders(ctx, userID, fallbackLimit)
		if err != nil {
			return nil, err
		}
		data := make([]RankedFounder, 0, len(recent))
		for i := range recent {
			data = append(data, RankedFounder{Profile: recent[i]})
		}
		metrics.RecommendationsServed.WithLabelValues("founders", ResultFallback).Inc()
		s.log.Debug("founder recommendations fell back to recency",
			zap.String("userId", userID.Hex()),
			zap.Int("count", len(data)))
		return &FounderResult{Type: ResultFallback, Data: data}, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].MatchScore != *ranked[j].MatchScore {
			return *ranked[i].MatchScore > *ranked[j].MatchScore
		}
		return ranked[i].Profile.CreatedAt > ranked[j].Profile.CreatedAt
	})
	if len(ranked) > matchedLimit {
		ranked = ranked[:matchedLimit]
	}

	metrics.RecommendationsServed.WithLabelValues("founders", ResultMatched).Inc()
	return &FounderResult{Type: ResultMatched, Data: ranked}, nil
}

// RecommendInvestors ranks investors for the subject founder. Any investor
// profile other than the subject's own is eligible.
func (s *Service) RecommendInvestors(ctx context.Context, userID primitive.ObjectID) (*InvestorResult, error) {
	subject, err := s.store.FindFounderByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, errs.InvalidState("founder profile required")
	}

	candidates, err := s.store.ListEligibleInvestorCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedInvestor, 0, len(candidates))
	for i := range candidates {
		score, sig := ScoreInvestor(subject, &candidates[i])
		sc, sg := score, sig
		ranked = append(ranked, RankedInvestor{
			Profile:    candidates[i],
			MatchScore: &sc,
			Signals:    &sg,
		})
	}

	if len(ranked) == 0 {
		recent, err := s.store.ListRecentInvestors(ctx, userID, fallbackLimit)
		if err != nil {
			return nil, err
		}
		data := make([]RankedInvestor, 0, len(recent))
		for i := range recent {
			data = append(data, RankedInvestor{Profile: recent[i]})
		}
		metrics.RecommendationsServed.WithLabelValues("investors", ResultFallback).Inc()
		s.log.Debug("investor recommendations fell back to recency",
			zap.String("userId", userID.Hex()),
			zap.Int("count", len(data)))
		return &InvestorResult{Type: ResultFallback, Data: data}, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].MatchScore != *ranked[j].MatchScore {
			return *ranked[i].MatchScore > *ranked[j].MatchScore
		}
		return ranked[i].Profile.CreatedAt > ranked[j].Profile.CreatedAt
	})
	if len(ranked) > matchedLimit {
		ranked = ranked[:matchedLimit]
	}

	metrics.RecommendationsServed.WithLabelValues("investors", ResultMatched).Inc()
	return &InvestorResult{Type: ResultMatched, Data: ranked}, nil
}
