package inq

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// DB is a handle onto one incremental computation database. A handle is not
// goroutine-safe: it carries the execution stack for one logical evaluation
// thread. Use Fork to obtain extra handles onto the same shared state.
type DB struct {
	shared *shared
	stack  []*frame
	// gates holds the in-flight gate keys this handle is currently inside
	// of; nested demand on a colliding key must bypass the gate instead of
	// waiting on itself.
	gates map[string]struct{}
}

// shared is the state common to all handles of one database. Two databases
// never share any of it.
type shared struct {
	// mu guards rev, kinds, kindList, inputs and memos.
	mu sync.RWMutex
	// setGate is read-held for the duration of every top-level query and
	// write-held by Set, so one query observes one revision throughout.
	setGate sync.RWMutex

	rev      Revision
	kinds    map[string]*Kind
	kindList []*Kind
	inputs   map[Ref]*inputRecord
	memos    map[Ref]*memo

	// inflight deduplicates concurrent full computations per (kind, key).
	inflight singleflight.Group

	logf          func(format string, args ...any)
	verbose       bool
	strict        bool
	skipUnchanged bool

	queryCount   atomic.Uint64
	hitCount     atomic.Uint64
	cutoffCount  atomic.Uint64
	computeCount atomic.Uint64
	setCount     atomic.Uint64
}

type Options struct {
	Logf    func(format string, args ...any)
	Verbose bool
	// IsTesting enables strict internal invariant checking.
	IsTesting bool
	// SkipUnchangedInputs makes Set a no-op (no revision bump) when the new
	// value's fingerprint matches the stored one. The default is the
	// conservative policy: every Set bumps the revision.
	SkipUnchangedInputs bool
}

// New returns an empty database at revision 0.
func New(opt Options) *DB {
	logf := opt.Logf
	if logf == nil {
		logf = func(format string, args ...any) {}
	}
	return &DB{
		shared: &shared{
			kinds:         make(map[string]*Kind),
			inputs:        make(map[Ref]*inputRecord),
			memos:         make(map[Ref]*memo),
			logf:          logf,
			verbose:       opt.Verbose,
			strict:        opt.IsTesting,
			skipUnchanged: opt.SkipUnchangedInputs,
		},
	}
}

// Fork returns a second handle onto the same database. Handles share all
// registered kinds and cached state but each carries its own execution
// stack, so separate goroutines must use separate handles.
func (db *DB) Fork() *DB {
	return &DB{shared: db.shared}
}

// CurrentRevision returns the revision of the latest input mutation.
func (db *DB) CurrentRevision() Revision {
	return db.shared.currentRev()
}

func (sh *shared) currentRev() Revision {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.rev
}
