package factdrill_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sky-flux/factdrill"
)

// BenchmarkCandidates measures candidate generation over all ten operands.
func BenchmarkCandidates(b *testing.B) {
	store := factdrill.NewFactStore()
	ops := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for i := 0; i < b.N; i++ {
		factdrill.Candidates(ops, store, 0)
	}
}

// BenchmarkSelect measures one weighted draw over 100 candidates with large
// priorities.
func BenchmarkSelect(b *testing.B) {
	store := factdrill.NewFactStore()
	for a := 1; a <= 10; a++ {
		for m := 1; m <= 10; m++ {
			for k := 0; k < 50; k++ {
				store.RecordOutcome(factdrill.Normalize(a, m), false, 10*time.Second)
			}
		}
	}
	ops := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cands := factdrill.Candidates(ops, store, 0)
	s := factdrill.NewSampler(rand.New(rand.NewSource(1)), factdrill.NewRecencyWindow(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Select(cands, ops)
	}
}

// BenchmarkTimeBoxedStart measures pre-generating a 100-problem batch.
func BenchmarkTimeBoxedStart(b *testing.B) {
	s, err := factdrill.NewSession(factdrill.EngineConfig{Seed: 1})
	if err != nil {
		b.Fatal(err)
	}
	cfg := factdrill.DefaultSessionConfig()
	cfg.Mode = factdrill.TimeBoxed
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Start(cfg, now); err != nil {
			b.Fatal(err)
		}
		s.Stop(now)
	}
}
