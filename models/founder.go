package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Location struct {
	Country string `bson:"country,omitempty" json:"country,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
}

type ProfileImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

type Links struct {
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	GitHub   string `bson:"github,omitempty" json:"github,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

type EquityOffered struct {
	Min        float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max        float64 `bson:"max,omitempty" json:"max,omitempty"`
	Negotiable bool    `bson:"negotiable" json:"negotiable"`
}

type FounderProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ProfileImage ProfileImage       `bson:"profileImage,omitempty" json:"profileImage"`
	Location     *Location          `bson:"location,omitempty" json:"location,omitempty"`

	CommitmentLevel string `bson:"commitmentLevel" json:"commitmentLevel"` // full-time, part-time, weekends-only, advisor

	// Scoring inputs. All tag sets are lowercased and trimmed at write time
	// so intersection checks are exact-match.
	Skills       []string `bson:"skills" json:"skills"`
	Interests    []string `bson:"interests" json:"interests"`
	IndustryTags []string `bson:"industryTags" json:"industryTags"`

	StartupStage    string `bson:"startupStage,omitempty" json:"startupStage,omitempty"` // idea, pre-seed, seed, series-a, scale, mature
	YearsExperience int    `bson:"yearsExperience" json:"yearsExperience"`
	FundingStatus   string `bson:"fundingStatus,omitempty" json:"fundingStatus,omitempty"` // bootstrapped, friends-family, angel, vc, none
	TeamSize        int    `bson:"teamSize,omitempty" json:"teamSize,omitempty"`

	// Co-founder matching preferences.
	LookingForCofounder          bool     `bson:"lookingForCofounder" json:"lookingForCofounder"`
	PreferredCofounderSkills     []string `bson:"preferredCofounderSkills" json:"preferredCofounderSkills"`
	PreferredCofounderExperience int      `bson:"preferredCofounderExperience" json:"preferredCofounderExperience"`

	StartupDescription string         `bson:"startupDescription,omitempty" json:"startupDescription,omitempty"`
	EquityOffered      *EquityOffered `bson:"equityOffered,omitempty" json:"equityOffered,omitempty"`
	Links              *Links         `bson:"links,omitempty" json:"links,omitempty"`

	CreatedAt int64 `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt int64 `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Country returns the profile's country or "" when location is unset.
func (p *FounderProfile) Country() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.Country
}
