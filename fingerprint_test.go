package inq

import "testing"

func TestFingerprint(t *testing.T) {
	type pair struct {
		A int    `msgpack:"a"`
		B string `msgpack:"b"`
	}

	eq := func(a, b any, want bool) {
		t.Helper()
		if got := fingerprintValue(a).equal(fingerprintValue(b)); got != want {
			t.Errorf("** equal(%v, %v) = %v, wanted %v", a, b, got, want)
		}
	}

	eq(1, 1, true)
	eq(1, 2, false)
	eq("x", "x", true)
	eq("x", "y", false)
	eq(pair{1, "x"}, pair{1, "x"}, true)
	eq(pair{1, "x"}, pair{2, "x"}, false)
	eq([]int{1, 2}, []int{1, 2}, true)
	eq(nil, nil, true)

	// Unencodable values never compare equal, even to themselves.
	f := func() {}
	eq(f, f, false)
	if fingerprintValue(f).ok {
		t.Errorf("** func value must not fingerprint")
	}
	if fingerprintValue(make(chan int)).ok {
		t.Errorf("** chan value must not fingerprint")
	}
}

func TestInflightGateKey(t *testing.T) {
	db := New(Options{IsTesting: true})
	k1, err := db.RegisterInput("k1")
	ok(t, err)
	k2, err := db.RegisterInput("k2")
	ok(t, err)

	a, okA := inflightGateKey(Ref{k1, "x"})
	b, okB := inflightGateKey(Ref{k2, "x"})
	deepEqual(t, okA, true)
	deepEqual(t, okB, true)
	if a == b {
		t.Errorf("** gate keys collide across kinds: %q", a)
	}

	a2, _ := inflightGateKey(Ref{k1, "x"})
	deepEqual(t, a, a2)

	ia, _ := inflightGateKey(Ref{k1, int(1)})
	ua, _ := inflightGateKey(Ref{k1, uint(1)})
	if ia == ua {
		t.Errorf("** gate keys collide across key types: %q", ia)
	}

	if _, gated := inflightGateKey(Ref{k1, func() {}}); gated {
		t.Errorf("** unencodable key must not be gated")
	}
}
