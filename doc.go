/*
Package inq implements an incremental computation engine: the host registers
query kinds at runtime (input kinds it sets directly, and derived kinds
computed by a registered function), and the engine memoizes derived results,
recomputing a value only when the inputs it actually read have changed.
Evaluation is demand-driven: nothing recomputes eagerly when an input changes,
only when a value is next asked for.

We implement:

1. Input kinds, holding a host-set value per key, stamped with the revision
it last changed at.

2. Derived kinds, computed on demand, with the (kind, key) pairs actually
read during the computation recorded as the result's dependencies.

3. Validity tracking, re-verifying a stale cached result bottom-up and
skipping recomputation when every re-verified dependency is unchanged
(early cutoff).

4. Cycle detection over an explicit per-handle execution stack.

# Technical Details

**Revisions.**
Every input mutation bumps a database-global revision counter. A memo record
remembers the revision its value last changed at (changedAt) and the revision
it was last known valid at (verifiedAt); changedAt <= verifiedAt always holds.

**Demand.**
Query consults the memo table first. A record verified at the current
revision is returned as is. A stale record is re-verified by demanding each
recorded dependency in order: if none changed after the record's verifiedAt,
the record is green and only its verifiedAt advances. Otherwise the compute
function runs in a fresh execution frame; the frame collects the dependencies
actually read, and the finished record replaces the old one wholesale. A
recomputed value equal to the previous one keeps the previous changedAt, so
dependents further up can stay green.

**Equality.**
Values are compared by fingerprint: a 64-bit xxhash of their canonical
msgpack encoding. Values msgpack cannot encode are conservatively treated as
always changed.

**Errors.**
Failed computations publish nothing: the previous record, if any, stays in
place unverified, and the next demand retries from scratch. Errors raised
while re-verifying dependencies abort the outer Query call unchanged.

**Handles.**
A DB handle is not goroutine-safe; Fork returns a second handle onto the same
state with its own execution stack. Shared tables are guarded internally,
inputs are frozen while any top-level query is in flight, and concurrent
demand for one key runs at most one computation, with the other handles
receiving the published record.
*/
package inq
