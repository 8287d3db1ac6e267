package inq

// frame accumulates the dependencies read by one in-flight computation.
// Frames live on the handle's execution stack; the stack models call
// nesting, not threads, and doubles as the cycle detector.
type frame struct {
	ref  Ref
	deps []Ref
	seen map[Ref]struct{}
}

func (fr *frame) record(ref Ref) {
	if _, dup := fr.seen[ref]; dup {
		return
	}
	if fr.seen == nil {
		fr.seen = make(map[Ref]struct{})
	}
	fr.seen[ref] = struct{}{}
	fr.deps = append(fr.deps, ref)
}

// push opens a frame for ref. If ref is already active on this handle's
// call chain, no frame is opened and the full cycle is returned instead.
func (db *DB) push(ref Ref) (*frame, error) {
	if err := db.checkCycle(ref); err != nil {
		return nil, err
	}
	fr := &frame{ref: ref}
	db.stack = append(db.stack, fr)
	return fr, nil
}

func (db *DB) checkCycle(ref Ref) error {
	for i, fr := range db.stack {
		if fr.ref != ref {
			continue
		}
		path := make([]Ref, 0, len(db.stack)-i+1)
		for _, f := range db.stack[i:] {
			path = append(path, f.ref)
		}
		path = append(path, ref)
		return &CycleError{Path: path}
	}
	return nil
}

func (db *DB) pop(fr *frame) {
	n := len(db.stack)
	if n == 0 || db.stack[n-1] != fr {
		panic("inq: corrupted execution stack")
	}
	db.stack[n-1] = nil
	db.stack = db.stack[:n-1]
}

// recordDep notes that the computation active on this handle, if any,
// read ref.
func (db *DB) recordDep(ref Ref) {
	if n := len(db.stack); n > 0 {
		db.stack[n-1].record(ref)
	}
}

// ActiveRefs returns the (kind, key) pairs currently being computed on this
// handle, outermost first.
func (db *DB) ActiveRefs() []Ref {
	refs := make([]Ref, len(db.stack))
	for i, fr := range db.stack {
		refs[i] = fr.ref
	}
	return refs
}
