package testkit

import (
	"testing"
)

func TestGenerate_Shape(t *testing.T) {
	pool := NewApplicantGenerator(DefaultApplicantConfig()).Generate()

	n := DefaultApplicantConfig().CandidateCount
	if len(pool.Candidates) != n || len(pool.Outcomes) != n {
		t.Fatalf("pool size = %d/%d, want %d", len(pool.Candidates), len(pool.Outcomes), n)
	}
	for _, attr := range []string{"gender", "age_band"} {
		if len(pool.Attributes[attr]) != n {
			t.Errorf("attribute %s has %d values, want %d", attr, len(pool.Attributes[attr]), n)
		}
	}

	for i, c := range pool.Candidates {
		if len(c.Skills) < 2 {
			t.Errorf("candidate %d has %d skills, want at least 2", i, len(c.Skills))
		}
		if c.MatchScore == nil {
			t.Fatalf("candidate %d has no match score", i)
		}
		if *c.MatchScore < 0 || *c.MatchScore > 1 {
			t.Errorf("candidate %d score out of [0,1]: %v", i, *c.MatchScore)
		}
	}
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	cfg := DefaultApplicantConfig()
	p1 := NewApplicantGenerator(cfg).Generate()
	p2 := NewApplicantGenerator(cfg).Generate()

	for i := range p1.Outcomes {
		if p1.Outcomes[i] != p2.Outcomes[i] {
			t.Fatalf("outcome %d diverged under the same seed", i)
		}
		if p1.Attributes["gender"][i] != p2.Attributes["gender"][i] {
			t.Fatalf("gender %d diverged under the same seed", i)
		}
	}
}

func TestGenerate_BiasDepressesSelectionRate(t *testing.T) {
	cfg := DefaultApplicantConfig()
	cfg.CandidateCount = 2000
	cfg.BiasedAttribute = "gender"
	cfg.BiasedCategory = "female"
	cfg.BiasPenalty = 0.3
	pool := NewApplicantGenerator(cfg).Generate()

	rates := map[string][2]int{} // selected, total
	for i, g := range pool.Attributes["gender"] {
		entry := rates[g]
		entry[1]++
		if pool.Outcomes[i] {
			entry[0]++
		}
		rates[g] = entry
	}

	femaleRate := float64(rates["female"][0]) / float64(rates["female"][1])
	maleRate := float64(rates["male"][0]) / float64(rates["male"][1])
	if femaleRate >= maleRate-0.15 {
		t.Errorf("female rate %.3f not clearly below male rate %.3f despite the 0.3 penalty",
			femaleRate, maleRate)
	}
}
