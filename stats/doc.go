// Package stats keeps long-term practice statistics for each learner.
//
// Finished sessions are bucketed by the calendar day they finished on and,
// within a day, by normalized fact, so 3×7 and 7×3 share one record. The
// buckets are stored as one JSON document per learner in a store.KV.
//
// # Usage
//
//	svc := stats.NewService(kv, logger)
//	session.OnFinish(func(r factdrill.SessionResult) {
//	    if err := svc.AddSession(ctx, userID, r); err != nil {
//	        logger.Error("record session", "err", err)
//	    }
//	})
//
//	us, err := svc.Get(ctx, userID)
//	weak := stats.Weakest(us.Merge(), 5)
package stats
