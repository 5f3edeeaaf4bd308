package overlap

import (
	"sync"

	"github.com/akmonengine/overlap/actor"
)

// Pair - two bodies to test against each other
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// PairResult - outcome of the hierarchy for one pair
type PairResult struct {
	Pair
	Report Report
}

// Overlapping tells if the hierarchy accepted the pair
func (r PairResult) Overlapping() bool {
	return r.Report.Intersects()
}

func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

// QueryPairs fans the pairs out to workersCount goroutines and streams one result per pair.
// The output channel is closed once every pair has been processed. Results arrive in
// completion order, not in input order.
//
// The report is filled like the short-circuit hierarchy: stages after the first
// rejection are left false and never computed.
func QueryPairs(pairs <-chan Pair, workersCount int) <-chan PairResult {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	results := make(chan PairResult, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(results)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairs {
					results <- PairResult{Pair: p, Report: hierarchy(p.BodyA, p.BodyB)}
				}
			}()
		}
		wg.Wait()
	}()

	return results
}

// hierarchy is Intersects keeping track of the stages that ran
func hierarchy(a, b *actor.RigidBody) Report {
	var r Report
	if r.Sphere = AnySphereOverlap(a, b); !r.Sphere {
		return r
	}
	if r.AABB = AnyAABBOverlap(a, b); !r.AABB {
		return r
	}
	r.OBB = AnyOBBOverlap(a, b)

	return r
}

// feedPairs streams a slice of pairs into a channel closed at the end
func feedPairs(pairs []Pair) <-chan Pair {
	ch := make(chan Pair, len(pairs))
	for _, p := range pairs {
		ch <- p
	}
	close(ch)

	return ch
}
