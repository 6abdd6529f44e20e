package testkit

import (
	"fmt"
	"math/rand"

	"fairaudit/domain/fairness"
)

// ApplicantGeneratorConfig configures the synthetic applicant-pool generator
type ApplicantGeneratorConfig struct {
	CandidateCount int     `json:"candidate_count"`
	BaseSelectRate float64 `json:"base_select_rate"`
	// BiasedAttribute, when set, receives a depressed selection rate for
	// BiasedCategory so tests can assert that disparities surface.
	BiasedAttribute string  `json:"biased_attribute,omitempty"`
	BiasedCategory  string  `json:"biased_category,omitempty"`
	BiasPenalty     float64 `json:"bias_penalty"`
	Seed            int64   `json:"seed"`
}

// DefaultApplicantConfig returns sensible defaults for a fair pool
func DefaultApplicantConfig() ApplicantGeneratorConfig {
	return ApplicantGeneratorConfig{
		CandidateCount: 200,
		BaseSelectRate: 0.4,
		BiasPenalty:    0.25,
		Seed:           42,
	}
}

// ApplicantPool is a complete synthetic dataset ready for the engine
type ApplicantPool struct {
	Candidates []fairness.FeatureRecord
	Outcomes   []bool
	Attributes map[string][]string
}

// ApplicantGenerator produces deterministic synthetic hiring pools
type ApplicantGenerator struct {
	config ApplicantGeneratorConfig
	rng    *rand.Rand
}

// NewApplicantGenerator creates a generator seeded from its config
func NewApplicantGenerator(config ApplicantGeneratorConfig) *ApplicantGenerator {
	return &ApplicantGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	skillPool = []string{
		"go", "python", "sql", "kubernetes", "react",
		"terraform", "java", "spark", "rust", "typescript",
	}
	genderCategories  = []string{"female", "male", "nonbinary"}
	ageBandCategories = []string{"18-29", "30-44", "45+"}
	educationLevels   = []fairness.EducationLevel{
		fairness.EducationHighSchool,
		fairness.EducationAssociate,
		fairness.EducationBachelor,
		fairness.EducationMaster,
		fairness.EducationDoctorate,
	}
)

// Generate produces the full pool: candidates, outcomes, and two
// protected attributes (gender, age_band).
func (g *ApplicantGenerator) Generate() *ApplicantPool {
	n := g.config.CandidateCount
	pool := &ApplicantPool{
		Candidates: make([]fairness.FeatureRecord, n),
		Outcomes:   make([]bool, n),
		Attributes: map[string][]string{
			"gender":   make([]string, n),
			"age_band": make([]string, n),
		},
	}

	for i := 0; i < n; i++ {
		gender := genderCategories[g.rng.Intn(len(genderCategories))]
		ageBand := ageBandCategories[g.rng.Intn(len(ageBandCategories))]
		pool.Attributes["gender"][i] = gender
		pool.Attributes["age_band"][i] = ageBand

		pool.Candidates[i] = g.generateCandidate(i)

		rate := g.config.BaseSelectRate
		if g.config.BiasedAttribute == "gender" && gender == g.config.BiasedCategory {
			rate -= g.config.BiasPenalty
		}
		if g.config.BiasedAttribute == "age_band" && ageBand == g.config.BiasedCategory {
			rate -= g.config.BiasPenalty
		}
		if rate < 0 {
			rate = 0
		}
		pool.Outcomes[i] = g.rng.Float64() < rate
	}

	return pool
}

// generateCandidate builds one feature record with a screening score
// loosely correlated to experience, so calibration has structure to find.
func (g *ApplicantGenerator) generateCandidate(i int) fairness.FeatureRecord {
	skillCount := 2 + g.rng.Intn(4)
	skills := make([]string, 0, skillCount)
	seen := make(map[string]struct{})
	for len(skills) < skillCount {
		s := skillPool[g.rng.Intn(len(skillPool))]
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		skills = append(skills, s)
	}

	experience := float64(g.rng.Intn(20)) + g.rng.Float64()
	score := 0.3 + 0.03*experience + g.rng.NormFloat64()*0.1
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return fairness.FeatureRecord{
		Skills:          skills,
		ExperienceYears: experience,
		Education:       educationLevels[g.rng.Intn(len(educationLevels))],
		MatchScore:      &score,
		Extra: map[string]interface{}{
			"applicant_ref": fmt.Sprintf("applicant_%04d", i+1),
		},
	}
}
