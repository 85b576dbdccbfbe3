package factdrill_test

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sky-flux/factdrill"
)

func ExampleSession() {
	s, err := factdrill.NewSession(factdrill.EngineConfig{Seed: 42})
	if err != nil {
		panic(err)
	}

	cfg := factdrill.DefaultSessionConfig()
	cfg.Operands = []int{7}
	cfg.ProblemCount = 5

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	if err := s.Start(cfg, now); err != nil {
		panic(err)
	}
	for p := s.Current(); p != nil; p = s.Current() {
		now = now.Add(2 * time.Second)
		s.SubmitAnswer(strconv.Itoa(p.A*p.B), now)
		s.Advance(now)
	}

	final, _ := s.Final()
	fmt.Printf("%d/%d correct, %.0f%%, avg %.1fs\n",
		final.Results.CorrectAnswers, final.Results.TotalProblems,
		final.Results.Accuracy, final.Results.AverageTime)
	// Output: 5/5 correct, 100%, avg 2.0s
}
