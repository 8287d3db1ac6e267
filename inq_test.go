package inq

import (
	"errors"
	"reflect"
	"testing"
)

func TestEndToEnd(t *testing.T) {
	db := New(Options{IsTesting: true})

	length, err := DefineInput[string, int](db, "len")
	ok(t, err)

	var computes int
	double, err := DefineDerived(db, "double", func(db *DB, key string) (int, error) {
		computes++
		n, err := length.Get(db, key)
		if err != nil {
			return 0, err
		}
		return n * 2, nil
	})
	ok(t, err)

	ok(t, length.Set(db, "x", 3))
	deepEqual(t, db.CurrentRevision(), Revision(1))

	v, err := double.Query(db, "x")
	ok(t, err)
	deepEqual(t, v, 6)
	deepEqual(t, computes, 1)

	// Conservative default: re-setting the same value still bumps the
	// revision and invalidates.
	ok(t, length.Set(db, "x", 3))
	deepEqual(t, db.CurrentRevision(), Revision(2))

	v, err = double.Query(db, "x")
	ok(t, err)
	deepEqual(t, v, 6)
	deepEqual(t, computes, 2)
}

func TestEndToEndSkipUnchangedInputs(t *testing.T) {
	db := New(Options{IsTesting: true, SkipUnchangedInputs: true})

	length, err := DefineInput[string, int](db, "len")
	ok(t, err)

	var computes int
	double, err := DefineDerived(db, "double", func(db *DB, key string) (int, error) {
		computes++
		n, err := length.Get(db, key)
		if err != nil {
			return 0, err
		}
		return n * 2, nil
	})
	ok(t, err)

	ok(t, length.Set(db, "x", 3))
	v, err := double.Query(db, "x")
	ok(t, err)
	deepEqual(t, v, 6)
	deepEqual(t, computes, 1)

	ok(t, length.Set(db, "x", 3))
	deepEqual(t, db.CurrentRevision(), Revision(1))

	v, err = double.Query(db, "x")
	ok(t, err)
	deepEqual(t, v, 6)
	deepEqual(t, computes, 1)

	ok(t, length.Set(db, "x", 4))
	deepEqual(t, db.CurrentRevision(), Revision(2))

	v, err = double.Query(db, "x")
	ok(t, err)
	deepEqual(t, v, 8)
	deepEqual(t, computes, 2)
}

func TestMemoization(t *testing.T) {
	db := New(Options{IsTesting: true})

	src, err := DefineInput[string, string](db, "src")
	ok(t, err)

	var computes int
	upper, err := DefineDerived(db, "upper", func(db *DB, key string) (string, error) {
		computes++
		s, err := src.Get(db, key)
		if err != nil {
			return "", err
		}
		return s + "!", nil
	})
	ok(t, err)

	ok(t, src.Set(db, "greeting", "hello"))

	v1, err := upper.Query(db, "greeting")
	ok(t, err)
	before := db.Stats()

	v2, err := upper.Query(db, "greeting")
	ok(t, err)
	after := db.Stats()

	deepEqual(t, v1, v2)
	deepEqual(t, computes, 1)
	deepEqual(t, after.Computes, before.Computes)
	if after.CacheHits <= before.CacheHits {
		t.Errorf("** second query did not take the fast path: %d -> %d hits", before.CacheHits, after.CacheHits)
	}
}

func TestInvalidation(t *testing.T) {
	db := New(Options{IsTesting: true})

	src, err := DefineInput[string, int](db, "src")
	ok(t, err)

	var innerComputes, outerComputes int
	inner, err := DefineDerived(db, "inner", func(db *DB, key string) (int, error) {
		innerComputes++
		n, err := src.Get(db, key)
		if err != nil {
			return 0, err
		}
		return n + 1, nil
	})
	ok(t, err)
	outer, err := DefineDerived(db, "outer", func(db *DB, key string) (int, error) {
		outerComputes++
		n, err := inner.Query(db, key)
		if err != nil {
			return 0, err
		}
		return n * 10, nil
	})
	ok(t, err)

	ok(t, src.Set(db, "k", 1))
	v, err := outer.Query(db, "k")
	ok(t, err)
	deepEqual(t, v, 20)
	deepEqual(t, innerComputes, 1)
	deepEqual(t, outerComputes, 1)

	// A transitively read input changed, so the next demand recomputes.
	ok(t, src.Set(db, "k", 5))
	v, err = outer.Query(db, "k")
	ok(t, err)
	deepEqual(t, v, 60)
	deepEqual(t, innerComputes, 2)
	deepEqual(t, outerComputes, 2)
}

func TestQueryOnInputKind(t *testing.T) {
	db := New(Options{IsTesting: true})

	src, err := DefineInput[string, int](db, "src")
	ok(t, err)
	ok(t, src.Set(db, "k", 42))

	v, err := db.Query(src.Kind, "k")
	ok(t, err)
	deepEqual(t, v, any(42))

	_, err = db.Query(src.Kind, "missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("** got %v, wanted NotFoundError", err)
	}
	deepEqual(t, nf.Ref.Key, any("missing"))
}

func ok(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf("** %v", err)
	}
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func wants[E error](t testing.TB, err error) E {
	t.Helper()
	var e E
	if !errors.As(err, &e) {
		t.Fatalf("** got error %v, wanted %T", err, e)
	}
	return e
}
