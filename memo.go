package inq

import "fmt"

// memo is the cached result of one derived (kind, key) computation. Records
// are replaced wholesale on recomputation; the only in-place mutation is the
// verifiedAt bump of a green record, done under the shared write lock.
type memo struct {
	value      any
	fp         fingerprint
	changedAt  Revision
	verifiedAt Revision
	deps       []Ref // (kind, key) pairs actually read, in read order
}

// memoSnapshot returns a copy of the memo record for ref. The deps slice is
// shared with the stored record, which never mutates it.
func (sh *shared) memoSnapshot(ref Ref) (memo, bool) {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	m := sh.memos[ref]
	if m == nil {
		return memo{}, false
	}
	return *m, true
}

// bumpVerified marks a green record as checked at rev without touching its
// value or changedAt.
func (sh *shared) bumpVerified(ref Ref, rev Revision) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if m := sh.memos[ref]; m != nil && m.verifiedAt < rev {
		m.verifiedAt = rev
	}
}

// publish stores the freshly computed record, inheriting the previous
// changedAt when the value's fingerprint is unchanged so that dependents
// can stay green (early cutoff).
func (sh *shared) publish(ref Ref, value any, deps []Ref, rev Revision) Revision {
	fp := fingerprintValue(value)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	changedAt := rev
	if prev := sh.memos[ref]; prev != nil && prev.fp.equal(fp) {
		changedAt = prev.changedAt
	}
	m := &memo{value: value, fp: fp, changedAt: changedAt, verifiedAt: rev, deps: deps}
	if sh.strict {
		if m.changedAt > m.verifiedAt || m.verifiedAt > sh.rev {
			panic(fmt.Errorf("inq: %v: invalid record: changed %v, verified %v, now %v", ref, m.changedAt, m.verifiedAt, sh.rev))
		}
	}
	sh.memos[ref] = m
	return changedAt
}

// Dependencies returns the dependencies recorded by the last computation of
// a derived key, in read order, or nil if it has never been computed.
func (db *DB) Dependencies(kind *Kind, key any) []Ref {
	m, ok := db.shared.memoSnapshot(Ref{kind, key})
	if !ok {
		return nil
	}
	return append([]Ref(nil), m.deps...)
}
