package recommend

import (
	"strings"
	"testing"

	"venturelink/models"
)

func founderWith(mut func(*models.FounderProfile)) *models.FounderProfile {
	p := &models.FounderProfile{
		Skills:                       []string{"react", "node"},
		Interests:                    []string{"fintech"},
		IndustryTags:                 []string{"saas"},
		PreferredCofounderSkills:     []string{"go"},
		PreferredCofounderExperience: 3,
		LookingForCofounder:          true,
	}
	if mut != nil {
		mut(p)
	}
	return p
}

func TestScoreCofounder_WeightedSum(t *testing.T) {
	// skills react+node vs react+go: 1 shared, 1 preferred, gap 0.
	subject := founderWith(nil)
	candidate := &models.FounderProfile{
		Skills:          []string{"react", "go"},
		YearsExperience: 3,
	}

	score, sig := ScoreCofounder(subject, candidate)
	if score != 7 {
		t.Fatalf("expected score 7, got %d (signals %+v)", score, sig)
	}
	if sig.SkillMatch != 1 || sig.PreferredSkillMatch != 1 || sig.ExperienceGap != 0 {
		t.Errorf("unexpected signals: %+v", sig)
	}
}

func TestScoreCofounder_ExperienceGapBonus(t *testing.T) {
	subject := founderWith(nil) // prefers 3 years

	tests := []struct {
		years int
		want  int
	}{
		{2, 1}, // gap 1, bonus
		{3, 1}, // gap 0, bonus
		{4, 1}, // gap 1, bonus
		{5, 0}, // gap 2, no bonus
		{0, 0}, // gap 3, no bonus
	}
	for _, tc := range tests {
		candidate := &models.FounderProfile{YearsExperience: tc.years}
		score, _ := ScoreCofounder(subject, candidate)
		if score != tc.want {
			t.Errorf("years=%d: expected score %d, got %d", tc.years, tc.want, score)
		}
	}
}

func TestScoreCofounder_MonotonicInSharedTags(t *testing.T) {
	subject := founderWith(func(p *models.FounderProfile) {
		p.Skills = []string{"react", "node", "go"}
		p.Interests = []string{"fintech", "climate"}
		p.IndustryTags = []string{"saas", "health"}
	})
	candidate := &models.FounderProfile{
		Skills:          []string{"react"},
		Interests:       []string{"fintech"},
		YearsExperience: 10,
	}

	base, _ := ScoreCofounder(subject, candidate)

	// Adding another shared tag of any kind must never decrease the score.
	additions := []func(*models.FounderProfile){
		func(p *models.FounderProfile) { p.Skills = append(p.Skills, "node") },
		func(p *models.FounderProfile) { p.Interests = append(p.Interests, "climate") },
		func(p *models.FounderProfile) { p.IndustryTags = append(p.IndustryTags, "saas") },
	}
	prev := base
	for i, add := range additions {
		add(candidate)
		score, _ := ScoreCofounder(subject, candidate)
		if score < prev {
			t.Fatalf("score decreased after addition %d: %d -> %d", i, prev, score)
		}
		prev = score
	}
	if prev <= base {
		t.Errorf("expected additions to raise score above %d, got %d", base, prev)
	}
}

func TestIntersectionCount_BoundedBySmallerSet(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"disjoint", []string{"a", "b"}, []string{"c"}, 0},
		{"subset", []string{"a", "b", "c"}, []string{"a", "b"}, 2},
		{"duplicates in a", []string{"a", "a", "a"}, []string{"a"}, 1},
		{"duplicates in both", []string{"a", "a", "b"}, []string{"a", "a"}, 1},
		{"empty", nil, []string{"a"}, 0},
	}
	for _, tc := range tests {
		got := intersectionCount(tc.a, tc.b)
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
		min := len(uniq(tc.a))
		if n := len(uniq(tc.b)); n < min {
			min = n
		}
		if got > min {
			t.Errorf("%s: count %d exceeds smaller set size %d", tc.name, got, min)
		}
	}
}

func uniq(in []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range in {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func TestScoreInvestor_Signals(t *testing.T) {
	subject := founderWith(func(p *models.FounderProfile) {
		p.IndustryTags = []string{"saas", "fintech"}
		p.StartupStage = "seed"
		p.Location = &models.Location{Country: "Germany"}
	})

	candidate := &models.InvestorProfile{
		PreferredIndustries: []string{"fintech", "health"},
		PreferredStages:     []string{"seed", "series-a"},
		GeographyPreference: []string{"Germany", "France"},
		InvestmentThesis:    strings.Repeat("x", 51),
	}

	score, sig := ScoreInvestor(subject, candidate)
	// 3*1 industry + 3 stage + 2 geography + 1 thesis.
	if score != 9 {
		t.Fatalf("expected score 9, got %d (signals %+v)", score, sig)
	}
	if sig.IndustryMatch != 1 || !sig.StageMatch || !sig.GeographyMatch || !sig.HasThesis {
		t.Errorf("unexpected signals: %+v", sig)
	}
}

func TestScoreInvestor_ThesisLengthBoundary(t *testing.T) {
	subject := founderWith(nil)

	atLimit := &models.InvestorProfile{InvestmentThesis: strings.Repeat("x", 50)}
	if score, sig := ScoreInvestor(subject, atLimit); sig.HasThesis || score != 0 {
		t.Errorf("50-char thesis should not count, got score=%d signals=%+v", score, sig)
	}

	overLimit := &models.InvestorProfile{InvestmentThesis: strings.Repeat("x", 51)}
	if score, sig := ScoreInvestor(subject, overLimit); !sig.HasThesis || score != 1 {
		t.Errorf("51-char thesis should count, got score=%d signals=%+v", score, sig)
	}
}

func TestScoreInvestor_UnknownCountrySkipsGeography(t *testing.T) {
	subject := founderWith(func(p *models.FounderProfile) {
		p.Location = nil
	})
	candidate := &models.InvestorProfile{
		// An empty preference list must not match an unknown country either.
		GeographyPreference: []string{""},
	}

	_, sig := ScoreInvestor(subject, candidate)
	if sig.GeographyMatch {
		t.Error("geography must not match when the founder country is unknown")
	}
}
