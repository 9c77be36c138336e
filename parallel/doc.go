// Package parallel provides the fixed-size worker pool and the
// location-sharded concurrent map that drive the solver's parallel phases.
//
// The concurrency model is deliberately simple: a Pool owns a fixed number
// of workers, work is handed out as index ranges over a channel, and every
// phase ends with a barrier join. Nothing suspends cooperatively; callers
// see a plain blocking call. Determinism is the caller's contract: tasks
// must write to disjoint slots (or disjoint ShardedMap keys), so the final
// state is independent of which worker ran which index.
//
// ShardedMap partitions its keys across independently locked shards with a
// stable key→shard assignment. Batches of updates can therefore be routed
// so that each shard is touched by exactly one worker at a time, avoiding
// any global lock without giving up deterministic results.
//
// Complexity:
//
//	– Pool.ForEach: O(n/W) wall-clock for n uniform tasks on W workers,
//	  O(n) total work, O(W) goroutines per call.
//	– ShardedMap operations: O(1) expected per Get/Set/Delete plus one
//	  shard RWMutex acquisition; Keys is O(K log K) for K stored keys.
//
// Errors: none. Both types are total over their inputs; invalid sizes fall
// back to runtime.GOMAXPROCS(0).
package parallel
