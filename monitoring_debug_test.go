package inq

import (
	"strings"
	"testing"
)

func TestStats(t *testing.T) {
	db := New(Options{IsTesting: true})

	src, err := DefineInput[string, int](db, "src")
	ok(t, err)
	twice, err := DefineDerived(db, "twice", func(db *DB, key string) (int, error) {
		n, err := src.Get(db, key)
		if err != nil {
			return 0, err
		}
		return n * 2, nil
	})
	ok(t, err)

	ok(t, src.Set(db, "a", 1))
	ok(t, src.Set(db, "b", 2))
	_, err = twice.Query(db, "a")
	ok(t, err)
	_, err = twice.Query(db, "a")
	ok(t, err)

	s := db.Stats()
	deepEqual(t, s.Revision, Revision(2))
	deepEqual(t, s.Kinds, 2)
	deepEqual(t, s.Inputs, 2)
	deepEqual(t, s.Memos, 1)
	deepEqual(t, s.Sets, uint64(2))
	deepEqual(t, s.Computes, uint64(1))
	if s.CacheHits == 0 {
		t.Errorf("** expected at least one cache hit")
	}

	deepEqual(t, Revision(7).String(), "r7")
}

func TestDump(t *testing.T) {
	var lines []string
	db := New(Options{
		IsTesting: true,
		Verbose:   true,
		Logf: func(format string, args ...any) {
			lines = append(lines, format)
		},
	})

	src, err := DefineInput[string, int](db, "src")
	ok(t, err)
	twice, err := DefineDerived(db, "twice", func(db *DB, key string) (int, error) {
		n, err := src.Get(db, key)
		if err != nil {
			return 0, err
		}
		return n * 2, nil
	})
	ok(t, err)

	ok(t, src.Set(db, "a", 21))
	_, err = twice.Query(db, "a")
	ok(t, err)

	dump := db.Dump(DumpAll)
	for _, want := range []string{
		"kind src: input",
		"kind twice: derived",
		"src(a) = 21 (changed r1)",
		"twice(a) = 42 (changed r1, verified r1)",
		"<- src(a)",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("** dump is missing %q:\n%s", want, dump)
		}
	}

	if len(lines) == 0 {
		t.Errorf("** verbose mode logged nothing")
	}
}
