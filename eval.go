package inq

// Query returns the value of (kind, key), computing or revalidating cached
// state as needed. For input kinds it behaves like Get. Like Get, it records
// the read into the computation active on this handle, if any.
func (db *DB) Query(kind *Kind, key any) (any, error) {
	if err := db.checkKind(kind); err != nil {
		return nil, err
	}
	sh := db.shared
	if len(db.stack) == 0 {
		// Freeze inputs for the duration of the outermost call so the
		// whole evaluation observes a single revision.
		sh.setGate.RLock()
		defer sh.setGate.RUnlock()
	}
	sh.queryCount.Add(1)
	value, _, err := db.demand(Ref{kind, key}, true)
	return value, err
}

// demand returns the up-to-date value of ref along with its authoritative
// changedAt revision. When record is set, ref is added to the dependencies
// of the computation active on this handle, if any; the validity walk passes
// record=false because verification traffic is not a read.
func (db *DB) demand(ref Ref, record bool) (any, Revision, error) {
	if ref.Kind.IsInput() {
		return db.demandInput(ref, record)
	}

	sh := db.shared
	rev := sh.currentRev()

	if m, ok := sh.memoSnapshot(ref); ok {
		if m.verifiedAt == rev {
			sh.hitCount.Add(1)
			if record {
				db.recordDep(ref)
			}
			return m.value, m.changedAt, nil
		}
		green, err := db.verify(ref, m, rev)
		if err != nil {
			return nil, 0, err
		}
		if green {
			sh.cutoffCount.Add(1)
			if sh.verbose {
				sh.logf("inq: green %v at %v (changed %v)", ref, rev, m.changedAt)
			}
			if record {
				db.recordDep(ref)
			}
			return m.value, m.changedAt, nil
		}
	}

	value, changedAt, err := db.computeMemo(ref, rev)
	if err != nil {
		return nil, 0, err
	}
	if record {
		db.recordDep(ref)
	}
	return value, changedAt, nil
}

// verify performs the validity walk: it re-demands every recorded dependency
// and reports whether the record is still green. A dependency whose
// authoritative changedAt exceeds the record's verifiedAt makes the record
// red immediately; the remaining dependencies are left for the recomputation
// to demand. Errors raised by a dependency abort the walk unchanged.
func (db *DB) verify(ref Ref, m memo, rev Revision) (bool, error) {
	for _, dep := range m.deps {
		_, changedAt, err := db.demand(dep, false)
		if err != nil {
			return false, err
		}
		if changedAt > m.verifiedAt {
			return false, nil
		}
	}
	db.shared.bumpVerified(ref, rev)
	return true, nil
}

// computeMemo runs a full computation of ref. Concurrent demand for the
// same key from other handles joins the in-flight computation instead of
// starting its own; cross-handle cycles are not detected and will block.
func (db *DB) computeMemo(ref Ref, rev Revision) (any, Revision, error) {
	sh := db.shared

	// Same-handle cycles must fail before entering the in-flight gate,
	// which is not reentrant.
	if err := db.checkCycle(ref); err != nil {
		return nil, 0, err
	}

	gateKey, gated := inflightGateKey(ref)
	if !gated {
		return db.runCompute(ref, rev)
	}
	if _, held := db.gates[gateKey]; held {
		// Distinct refs can share a gate key; waiting on a key this handle
		// already holds would deadlock against our own computation.
		return db.runCompute(ref, rev)
	}
	if db.gates == nil {
		db.gates = make(map[string]struct{})
	}
	db.gates[gateKey] = struct{}{}
	defer delete(db.gates, gateKey)

	type outcome struct {
		value     any
		changedAt Revision
	}
	var ran bool
	v, err, _ := sh.inflight.Do(gateKey, func() (any, error) {
		ran = true
		value, changedAt, err := db.runCompute(ref, rev)
		if err != nil {
			return nil, err
		}
		return outcome{value, changedAt}, nil
	})
	if ran {
		if err != nil {
			return nil, 0, err
		}
		o := v.(outcome)
		return o.value, o.changedAt, nil
	}

	// Another handle computed while we waited. Gate keys are derived from
	// encoded keys, so trust only a record actually published for ref.
	if err == nil {
		if m, ok := sh.memoSnapshot(ref); ok && m.verifiedAt == rev {
			return m.value, m.changedAt, nil
		}
	}
	return db.runCompute(ref, rev)
}

func (db *DB) runCompute(ref Ref, rev Revision) (any, Revision, error) {
	sh := db.shared

	// A racing handle may have published between our memo lookup and the
	// in-flight gate; its record is authoritative for this revision.
	if m, ok := sh.memoSnapshot(ref); ok && m.verifiedAt == rev {
		return m.value, m.changedAt, nil
	}

	fr, err := db.push(ref)
	if err != nil {
		return nil, 0, err
	}
	defer db.pop(fr)

	sh.computeCount.Add(1)
	if sh.verbose {
		sh.logf("inq: compute %v at %v", ref, rev)
	}
	value, err := ref.Kind.compute(db, ref.Key)
	if err != nil {
		return nil, 0, err
	}
	changedAt := sh.publish(ref, value, fr.deps, rev)
	return value, changedAt, nil
}
