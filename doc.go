// Package factdrill implements an adaptive problem selection engine for
// multiplication fact drills.
//
// A Session poses problems a×b where a comes from the learner's selected
// operands and b ranges over 1..10. Each answer feeds a per-fact priority
// score: wrong or slow answers raise it, fast correct answers lower it. The
// next problem is drawn at random with probability proportional to that
// priority, doubled for facts not seen in the last few problems. Facts
// answered correctly ten times in a row are retired for the rest of the
// session.
//
// Basic usage:
//
//	s, err := factdrill.NewSession(factdrill.EngineConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := factdrill.DefaultSessionConfig()
//	cfg.Operands = []int{3, 7}
//	if err := s.Start(cfg, time.Now()); err != nil {
//	    log.Fatal(err)
//	}
//	for p := s.Current(); p != nil; p = s.Current() {
//	    res := s.SubmitAnswer(readLine(), time.Now())
//	    fmt.Println(res.Correct, res.CorrectAnswer)
//	    s.Advance(time.Now())
//	}
//	final, _ := s.Final()
//
// The stats, store and users subpackages provide the surrounding
// statistics, persistence and learner-profile plumbing.
package factdrill
