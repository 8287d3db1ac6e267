package inq

import "fmt"

// Kind identifies a registered class of queries, either an input kind (the
// host sets its values) or a derived kind (values come from a compute
// function). Kind handles are only valid with the database that issued them.
type Kind struct {
	name    string
	ord     int
	compute ComputeFunc // nil for input kinds
	shared  *shared
}

// ComputeFunc computes the value of one derived key. Reads it makes through
// db (Get and Query) are recorded as the result's dependencies.
type ComputeFunc func(db *DB, key any) (any, error)

func (k *Kind) Name() string { return k.name }

func (k *Kind) IsInput() bool { return k.compute == nil }

func (k *Kind) String() string { return k.name }

// Ref identifies one query invocation, a (kind, key) pair.
type Ref struct {
	Kind *Kind
	Key  any
}

func (r Ref) String() string {
	return fmt.Sprintf("%s(%v)", r.Kind.Name(), r.Key)
}

// RegisterInput registers an input kind under name. Registering the same
// name again with the same shape is a no-op returning the existing handle;
// a derived kind under that name is a shape conflict.
func (db *DB) RegisterInput(name string) (*Kind, error) {
	return db.registerKind(name, nil)
}

// RegisterDerived registers a derived kind under name, computed by fn.
// Registering the same name again with the same shape is a no-op returning
// the existing handle with its original compute function.
func (db *DB) RegisterDerived(name string, fn ComputeFunc) (*Kind, error) {
	if fn == nil {
		return nil, configErrf(name, "derived kind requires a compute function")
	}
	return db.registerKind(name, fn)
}

// KindNamed returns the registered kind with the given name, or nil.
func (db *DB) KindNamed(name string) *Kind {
	sh := db.shared
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.kinds[name]
}

// Kinds returns all registered kinds in registration order.
func (db *DB) Kinds() []*Kind {
	sh := db.shared
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return append([]*Kind(nil), sh.kindList...)
}

func (db *DB) registerKind(name string, fn ComputeFunc) (*Kind, error) {
	if name == "" {
		return nil, configErrf("", "kind name cannot be empty")
	}
	sh := db.shared
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if k := sh.kinds[name]; k != nil {
		if k.IsInput() != (fn == nil) {
			return nil, configErrf(name, "already registered as %s kind", shapeName(k.IsInput()))
		}
		return k, nil
	}
	k := &Kind{name: name, ord: len(sh.kindList), compute: fn, shared: sh}
	sh.kinds[name] = k
	sh.kindList = append(sh.kindList, k)
	return k, nil
}

func shapeName(input bool) string {
	if input {
		return "an input"
	}
	return "a derived"
}

func (db *DB) checkKind(kind *Kind) error {
	if kind == nil {
		return configErrf("", "nil kind")
	}
	if kind.shared != db.shared {
		return configErrf(kind.name, "kind registered with a different database")
	}
	return nil
}
