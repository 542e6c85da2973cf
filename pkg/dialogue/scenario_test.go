package dialogue

import (
	"math/rand"
	"testing"
)

func TestValidateScenarioWeights(t *testing.T) {
	if err := ValidateScenarioWeights(DefaultScenarioWeights()); err != nil {
		t.Fatalf("default weights rejected: %v", err)
	}
	if err := ValidateScenarioWeights(map[string]float64{"a": 0.5, "b": 0.3}); err == nil {
		t.Fatal("expected sum error")
	}
	if err := ValidateScenarioWeights(map[string]float64{"a": 1.5, "b": -0.5}); err == nil {
		t.Fatal("expected range error")
	}
	if err := ValidateScenarioWeights(nil); err == nil {
		t.Fatal("expected empty error")
	}
	// within the 0.01 tolerance
	if err := ValidateScenarioWeights(map[string]float64{"a": 0.333, "b": 0.333, "c": 0.333}); err != nil {
		t.Fatalf("tolerant sum rejected: %v", err)
	}
}

func TestDistributionExactSplit(t *testing.T) {
	sel, err := NewScenarioSelector(map[string]float64{"a": 0.5, "b": 0.5}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewScenarioSelector: %v", err)
	}
	got := sel.Distribution(10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	counts := map[string]int{}
	for _, label := range got {
		counts[label]++
	}
	if counts["a"] != 5 || counts["b"] != 5 {
		t.Fatalf("counts = %v, want 5/5", counts)
	}
}

func TestDistributionBackfillsShortfall(t *testing.T) {
	weights := DefaultScenarioWeights()
	sel, err := NewScenarioSelector(weights, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("NewScenarioSelector: %v", err)
	}
	// 7 conversations: floors sum to 5, two backfilled draws
	got := sel.Distribution(7)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	for _, label := range got {
		if _, ok := weights[label]; !ok {
			t.Fatalf("unknown label %q", label)
		}
	}
}

func TestDistributionDeterministicUnderSeed(t *testing.T) {
	a, _ := NewScenarioSelector(DefaultScenarioWeights(), rand.New(rand.NewSource(9)))
	b, _ := NewScenarioSelector(DefaultScenarioWeights(), rand.New(rand.NewSource(9)))
	da, db := a.Distribution(20), b.Distribution(20)
	for i := range da {
		if da[i] != db[i] {
			t.Fatalf("draw %d differs: %s vs %s", i, da[i], db[i])
		}
	}
}

func TestDefaultScenariosCoverWeights(t *testing.T) {
	scenarios := DefaultScenarios()
	for name := range DefaultScenarioWeights() {
		if _, ok := scenarios[name]; !ok {
			t.Fatalf("weighted scenario %q has no definition", name)
		}
	}
}
