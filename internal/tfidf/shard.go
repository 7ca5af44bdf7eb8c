package tfidf

import (
	"golang.org/x/sync/errgroup"
)

// scoreShards calls score for every index in [0, n). With more than one worker the
// range is cut into contiguous shards that run concurrently; score must only write
// to the slot for its own index.
func scoreShards(n, workers int, score func(i int)) {
	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			score(i)
		}
		return
	}

	shardSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += shardSize {
		end := min(start+shardSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				score(i)
			}
			return nil
		})
	}
	// shards never fail
	_ = g.Wait()
}
