// Package recommend implements the compatibility scoring engine and the
// candidate selection / fallback policy around it.
package recommend

import (
	"unicode/utf8"

	"venturelink/models"
)

// Scoring weights. Tag overlaps count per shared element; stage, geography
// and thesis are binary signals.
const (
	weightSkill          = 3
	weightPreferredSkill = 3
	weightInterest       = 2
	weightIndustry       = 2

	weightInvestorIndustry = 3
	weightInvestorStage    = 3
	weightGeography        = 2
	weightThesis           = 1

	// A thesis shorter than this is treated as absent.
	thesisMinLength = 50

	// Candidates within one year of the preferred experience get the bonus.
	experienceGapTolerance = 1
)

// CofounderSignals carries the raw per-signal counts behind a co-founder
// score, useful for explaining a recommendation.
type CofounderSignals struct {
	SkillMatch          int `json:"skillMatch"`
	PreferredSkillMatch int `json:"preferredSkillMatch"`
	InterestMatch       int `json:"interestMatch"`
	IndustryMatch       int `json:"industryMatch"`
	ExperienceGap       int `json:"experienceGap"`
}

// ScoreCofounder computes the weighted compatibility of a candidate founder
// for the subject. Pure function of its inputs; eligibility (not self,
// lookingForCofounder) is the caller's concern.
func ScoreCofounder(subject, candidate *models.FounderProfile) (int, CofounderSignals) {
	sig := CofounderSignals{
		SkillMatch:          intersectionCount(candidate.Skills, subject.Skills),
		PreferredSkillMatch: intersectionCount(candidate.Skills, subject.PreferredCofounderSkills),
		InterestMatch:       intersectionCount(candidate.Interests, subject.Interests),
		IndustryMatch:       intersectionCount(candidate.IndustryTags, subject.IndustryTags),
		ExperienceGap:       abs(candidate.YearsExperience - subject.PreferredCofounderExperience),
	}

	score := weightSkill*sig.SkillMatch +
		weightPreferredSkill*sig.PreferredSkillMatch +
		weightInterest*sig.InterestMatch +
		weightIndustry*sig.IndustryMatch
	if sig.ExperienceGap <= experienceGapTolerance {
		score++
	}
	return score, sig
}

// InvestorSignals carries the raw per-signal values behind an investor score.
type InvestorSignals struct {
	IndustryMatch  int  `json:"industryMatch"`
	StageMatch     bool `json:"stageMatch"`
	GeographyMatch bool `json:"geographyMatch"`
	HasThesis      bool `json:"hasThesis"`
}

// ScoreInvestor computes the weighted fit of a candidate investor for the
// subject founder. Geography only counts when the founder's country is known.
func ScoreInvestor(subject *models.FounderProfile, candidate *models.InvestorProfile) (int, InvestorSignals) {
	country := subject.Country()

	sig := InvestorSignals{
		IndustryMatch:  intersectionCount(candidate.PreferredIndustries, subject.IndustryTags),
		StageMatch:     subject.StartupStage != "" && contains(candidate.PreferredStages, subject.StartupStage),
		GeographyMatch: country != "" && contains(candidate.GeographyPreference, country),
		HasThesis:      utf8.RuneCountInString(candidate.InvestmentThesis) > thesisMinLength,
	}

	score := weightInvestorIndustry * sig.IndustryMatch
	if sig.StageMatch {
		score += weightInvestorStage
	}
	if sig.GeographyMatch {
		score += weightGeography
	}
	if sig.HasThesis {
		score += weightThesis
	}
	return score, sig
}

// intersectionCount counts distinct elements present in both slices, so the
// result is bounded by the smaller set regardless of duplicates.
func intersectionCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(a))
	count := 0
	for _, v := range a {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := inB[v]; ok {
			count++
		}
	}
	return count
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
