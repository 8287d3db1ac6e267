package inq

import (
	"fmt"
	"sort"
	"strings"
)

type DumpFlags uint64

const (
	DumpKinds = DumpFlags(1 << iota)
	DumpInputs
	DumpMemos
	DumpDeps

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the database state for debugging.
func (db *DB) Dump(f DumpFlags) string {
	sh := db.shared
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	var buf strings.Builder
	fmt.Fprintln(&buf, dumpSep1)
	fmt.Fprintf(&buf, "db at %v: %d kinds, %d inputs, %d memos\n", sh.rev, len(sh.kindList), len(sh.inputs), len(sh.memos))

	if f.Contains(DumpKinds) {
		fmt.Fprintln(&buf, dumpSep2)
		for _, k := range sh.kindList {
			shape := "derived"
			if k.IsInput() {
				shape = "input"
			}
			fmt.Fprintf(&buf, "kind %s: %s\n", k.name, shape)
		}
	}

	if f.Contains(DumpInputs) {
		fmt.Fprintln(&buf, dumpSep2)
		for _, ref := range sortedInputRefs(sh.inputs) {
			rec := sh.inputs[ref]
			fmt.Fprintf(&buf, "%v = %v (changed %v)\n", ref, rec.value, rec.changedAt)
		}
	}

	if f.Contains(DumpMemos) {
		fmt.Fprintln(&buf, dumpSep2)
		for _, ref := range sortedMemoRefs(sh.memos) {
			m := sh.memos[ref]
			fmt.Fprintf(&buf, "%v = %v (changed %v, verified %v)\n", ref, m.value, m.changedAt, m.verifiedAt)
			if f.Contains(DumpDeps) {
				for _, dep := range m.deps {
					fmt.Fprintf(&buf, "%s<- %v\n", indentStep, dep)
				}
			}
		}
	}
	return buf.String()
}

const indentStep = "  "

func sortedInputRefs(m map[Ref]*inputRecord) []Ref {
	refs := make([]Ref, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sortRefs(refs)
	return refs
}

func sortedMemoRefs(m map[Ref]*memo) []Ref {
	refs := make([]Ref, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sortRefs(refs)
	return refs
}

func sortRefs(refs []Ref) {
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if a.Kind.ord != b.Kind.ord {
			return a.Kind.ord < b.Kind.ord
		}
		return fmt.Sprint(a.Key) < fmt.Sprint(b.Key)
	})
}
