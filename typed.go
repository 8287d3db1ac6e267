package inq

import "fmt"

// Input is a typed handle for an input kind. It wraps the dynamic API
// without adding semantics; mixing typed and untyped access to one kind
// with mismatched types panics on read.
type Input[K comparable, V any] struct {
	Kind *Kind
}

// DefineInput registers (or finds) an input kind under name and returns a
// typed handle for it.
func DefineInput[K comparable, V any](db *DB, name string) (Input[K, V], error) {
	kind, err := db.RegisterInput(name)
	if err != nil {
		return Input[K, V]{}, err
	}
	return Input[K, V]{Kind: kind}, nil
}

func (in Input[K, V]) Set(db *DB, key K, value V) error {
	return db.Set(in.Kind, key, value)
}

func (in Input[K, V]) Get(db *DB, key K) (V, error) {
	value, err := db.Get(in.Kind, key)
	if err != nil {
		var zero V
		return zero, err
	}
	return cast[V](in.Kind, value), nil
}

// Derived is a typed handle for a derived kind.
type Derived[K comparable, V any] struct {
	Kind *Kind
}

// DefineDerived registers (or finds) a derived kind under name and returns
// a typed handle for it. Keys demanded through the dynamic API must be of
// type K; the compute wrapper panics otherwise.
func DefineDerived[K comparable, V any](db *DB, name string, fn func(db *DB, key K) (V, error)) (Derived[K, V], error) {
	kind, err := db.RegisterDerived(name, func(db *DB, key any) (any, error) {
		return fn(db, key.(K))
	})
	if err != nil {
		return Derived[K, V]{}, err
	}
	return Derived[K, V]{Kind: kind}, nil
}

func (dv Derived[K, V]) Query(db *DB, key K) (V, error) {
	value, err := db.Query(dv.Kind, key)
	if err != nil {
		var zero V
		return zero, err
	}
	return cast[V](dv.Kind, value), nil
}

func cast[V any](kind *Kind, value any) V {
	v, ok := value.(V)
	if !ok {
		panic(fmt.Errorf("inq: %s: expected %T value, got %T", kind.name, v, value))
	}
	return v
}
