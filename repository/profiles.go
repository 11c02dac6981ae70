package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturelink/errs"
	"venturelink/models"
)

// CreateFounderProfile inserts the profile, normalizing all tag sets at
// write time, and pins the owning user's role to founder. Each user gets at
// most one founder profile.
func (r *Repository) CreateFounderProfile(ctx context.Context, p *models.FounderProfile) error {
	count, err := r.founders.CountDocuments(ctx, bson.M{"userId": p.UserID})
	if err != nil {
		return err
	}
	if count > 0 {
		return errs.Conflict("founder profile already exists")
	}

	normalizeFounder(p)
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().Unix()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.founders.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("founder profile already exists")
		}
		return err
	}

	return r.SetUserRole(ctx, p.UserID, models.RoleFounder)
}

func (r *Repository) UpdateFounderProfile(ctx context.Context, p *models.FounderProfile) error {
	normalizeFounder(p)
	p.UpdatedAt = time.Now().Unix()

	res, err := r.founders.UpdateOne(ctx,
		bson.M{"userId": p.UserID},
		bson.M{"$set": bson.M{
			"profileImage":                 p.ProfileImage,
			"location":                     p.Location,
			"commitmentLevel":              p.CommitmentLevel,
			"skills":                       p.Skills,
			"interests":                    p.Interests,
			"industryTags":                 p.IndustryTags,
			"startupStage":                 p.StartupStage,
			"yearsExperience":              p.YearsExperience,
			"fundingStatus":                p.FundingStatus,
			"teamSize":                     p.TeamSize,
			"lookingForCofounder":          p.LookingForCofounder,
			"preferredCofounderSkills":     p.PreferredCofounderSkills,
			"preferredCofounderExperience": p.PreferredCofounderExperience,
			"startupDescription":           p.StartupDescription,
			"equityOffered":                p.EquityOffered,
			"links":                        p.Links,
			"updatedAt":                    p.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("founder profile not found")
	}
	return nil
}

// FindFounderByUser returns nil without error when the user has no founder
// profile.
func (r *Repository) FindFounderByUser(ctx context.Context, userID primitive.ObjectID) (*models.FounderProfile, error) {
	var p models.FounderProfile
	err := r.founders.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListEligibleFounderCandidates returns every founder profile that could be
// scored as a co-founder candidate: not the subject, and looking for one.
func (r *Repository) ListEligibleFounderCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]models.FounderProfile, error) {
	cursor, err := r.founders.Find(ctx, bson.M{
		"userId":              bson.M{"$ne": excludeUserID},
		"lookingForCofounder": true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.FounderProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListRecentFounders is the fallback query: newest profiles first under the
// same base predicate as candidate selection, without scoring.
func (r *Repository) ListRecentFounders(ctx context.Context, excludeUserID primitive.ObjectID, limit int) ([]models.FounderProfile, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.founders.Find(ctx, bson.M{
		"userId":              bson.M{"$ne": excludeUserID},
		"lookingForCofounder": true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.FounderProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *Repository) CreateInvestorProfile(ctx context.Context, p *models.InvestorProfile) error {
	count, err := r.investors.CountDocuments(ctx, bson.M{"userId": p.UserID})
	if err != nil {
		return err
	}
	if count > 0 {
		return errs.Conflict("investor profile already exists")
	}

	normalizeInvestor(p)
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().Unix()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.investors.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("investor profile already exists")
		}
		return err
	}

	return r.SetUserRole(ctx, p.UserID, models.RoleInvestor)
}

func (r *Repository) UpdateInvestorProfile(ctx context.Context, p *models.InvestorProfile) error {
	normalizeInvestor(p)
	p.UpdatedAt = time.Now().Unix()

	res, err := r.investors.UpdateOne(ctx,
		bson.M{"userId": p.UserID},
		bson.M{"$set": bson.M{
			"profileImage":        p.ProfileImage,
			"location":            p.Location,
			"investorType":        p.InvestorType,
			"investmentThesis":    p.InvestmentThesis,
			"checkSizeMin":        p.CheckSizeMin,
			"checkSizeMax":        p.CheckSizeMax,
			"preferredStages":     p.PreferredStages,
			"preferredIndustries": p.PreferredIndustries,
			"geographyPreference": p.GeographyPreference,
			"pastInvestments":     p.PastInvestments,
			"links":               p.Links,
			"updatedAt":           p.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("investor profile not found")
	}
	return nil
}

func (r *Repository) FindInvestorByUser(ctx context.Context, userID primitive.ObjectID) (*models.InvestorProfile, error) {
	var p models.InvestorProfile
	err := r.investors.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListEligibleInvestorCandidates excludes only the subject; any investor
// profile can be scored.
func (r *Repository) ListEligibleInvestorCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]models.InvestorProfile, error) {
	cursor, err := r.investors.Find(ctx, bson.M{"userId": bson.M{"$ne": excludeUserID}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.InvestorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *Repository) ListRecentInvestors(ctx context.Context, excludeUserID primitive.ObjectID, limit int) ([]models.InvestorProfile, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.investors.Find(ctx, bson.M{"userId": bson.M{"$ne": excludeUserID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.InvestorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func normalizeFounder(p *models.FounderProfile) {
	p.Skills = models.NormalizeTags(p.Skills)
	p.Interests = models.NormalizeTags(p.Interests)
	p.IndustryTags = models.NormalizeTags(p.IndustryTags)
	p.PreferredCofounderSkills = models.NormalizeTags(p.PreferredCofounderSkills)
}

func normalizeInvestor(p *models.InvestorProfile) {
	p.PreferredIndustries = models.NormalizeTags(p.PreferredIndustries)
	p.GeographyPreference = models.TrimTags(p.GeographyPreference)
}
