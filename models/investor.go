package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type PastInvestment struct {
	Company  string  `bson:"company" json:"company"`
	Industry string  `bson:"industry,omitempty" json:"industry,omitempty"`
	Amount   float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Year     int     `bson:"year,omitempty" json:"year,omitempty"`
}

type InvestorProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ProfileImage ProfileImage       `bson:"profileImage,omitempty" json:"profileImage"`
	Location     *Location          `bson:"location,omitempty" json:"location,omitempty"`

	InvestorType     string  `bson:"investorType,omitempty" json:"investorType,omitempty"` // angel, vc, syndicate, corporate, accelerator, family-office
	InvestmentThesis string  `bson:"investmentThesis,omitempty" json:"investmentThesis,omitempty"`
	CheckSizeMin     float64 `bson:"checkSizeMin,omitempty" json:"checkSizeMin,omitempty"`
	CheckSizeMax     float64 `bson:"checkSizeMax,omitempty" json:"checkSizeMax,omitempty"`

	PreferredStages     []string `bson:"preferredStages" json:"preferredStages"` // idea, pre-seed, seed, series-a, series-b, growth
	PreferredIndustries []string `bson:"preferredIndustries" json:"preferredIndustries"`
	GeographyPreference []string `bson:"geographyPreference" json:"geographyPreference"`

	PastInvestments []PastInvestment `bson:"pastInvestments,omitempty" json:"pastInvestments,omitempty"`
	Links           *Links           `bson:"links,omitempty" json:"links,omitempty"`

	CreatedAt int64 `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt int64 `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
