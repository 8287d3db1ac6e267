package inq

// Stats is a point-in-time snapshot of the engine counters.
type Stats struct {
	Revision Revision
	Kinds    int
	Inputs   int
	Memos    int

	Queries      uint64 // Query calls, nested ones included
	CacheHits    uint64 // fast-path returns of an already verified record
	EarlyCutoffs uint64 // green revalidations that skipped recomputation
	Computes     uint64 // compute function invocations
	Sets         uint64 // input writes that bumped the revision
}

func (db *DB) Stats() Stats {
	sh := db.shared
	sh.mu.RLock()
	s := Stats{
		Revision: sh.rev,
		Kinds:    len(sh.kindList),
		Inputs:   len(sh.inputs),
		Memos:    len(sh.memos),
	}
	sh.mu.RUnlock()
	s.Queries = sh.queryCount.Load()
	s.CacheHits = sh.hitCount.Load()
	s.EarlyCutoffs = sh.cutoffCount.Load()
	s.Computes = sh.computeCount.Load()
	s.Sets = sh.setCount.Load()
	return s
}
