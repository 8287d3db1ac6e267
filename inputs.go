package inq

// inputRecord holds the current value of one input key. Records are
// replaced wholesale on every Set and never removed.
type inputRecord struct {
	value     any
	fp        fingerprint
	changedAt Revision
}

// Set stores the value of an input key, bumping the revision and thereby
// invalidating every derived record that transitively read the key. With
// Options.SkipUnchangedInputs, a value whose fingerprint matches the stored
// one leaves the database untouched. Set blocks while queries are in flight
// on other handles; calling it from inside a computation on this handle is
// a ConfigurationError.
func (db *DB) Set(kind *Kind, key, value any) error {
	if err := db.checkKind(kind); err != nil {
		return err
	}
	if !kind.IsInput() {
		return configErrf(kind.name, "Set on a derived kind")
	}
	if len(db.stack) > 0 {
		return configErrf(kind.name, "Set inside a computation")
	}
	sh := db.shared
	sh.setGate.Lock()
	defer sh.setGate.Unlock()
	sh.mu.Lock()
	defer sh.mu.Unlock()

	ref := Ref{kind, key}
	fp := fingerprintValue(value)
	if sh.skipUnchanged {
		if prev := sh.inputs[ref]; prev != nil && prev.fp.equal(fp) {
			return nil
		}
	}
	sh.rev++
	sh.inputs[ref] = &inputRecord{value: value, fp: fp, changedAt: sh.rev}
	sh.setCount.Add(1)
	if sh.verbose {
		sh.logf("inq: set %v at %v", ref, sh.rev)
	}
	return nil
}

// Get returns the current value of an input key, recording the read as a
// dependency of the computation active on this handle, if any.
func (db *DB) Get(kind *Kind, key any) (any, error) {
	if err := db.checkKind(kind); err != nil {
		return nil, err
	}
	if !kind.IsInput() {
		return nil, configErrf(kind.name, "Get on a derived kind")
	}
	value, _, err := db.demandInput(Ref{kind, key}, true)
	return value, err
}

func (db *DB) demandInput(ref Ref, record bool) (any, Revision, error) {
	sh := db.shared
	sh.mu.RLock()
	rec := sh.inputs[ref]
	sh.mu.RUnlock()
	if rec == nil {
		return nil, 0, &NotFoundError{Ref: ref}
	}
	if record {
		db.recordDep(ref)
	}
	return rec.value, rec.changedAt, nil
}
