package inq

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// fingerprint is a 64-bit digest of a value's canonical msgpack encoding,
// used to decide whether a recomputed or re-set value actually changed.
// Values msgpack cannot encode get a zero fingerprint with ok unset and
// always compare as changed.
type fingerprint struct {
	hash uint64
	ok   bool
}

func fingerprintValue(v any) fingerprint {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fingerprint{}
	}
	return fingerprint{hash: xxhash.Sum64(data), ok: true}
}

func (fp fingerprint) equal(other fingerprint) bool {
	return fp.ok && other.ok && fp.hash == other.hash
}

// inflightGateKey derives the computation dedup key for ref from the
// dynamic type and canonical encoding of its key. The encoding alone is not
// enough: int(1) and uint(1) both encode to 0x01. Keys of one type can still
// collide (distinct pointers to equal values), so holders of a gate key must
// never wait on it twice. Unencodable keys are not gated.
func inflightGateKey(ref Ref) (string, bool) {
	data, err := msgpack.Marshal(ref.Key)
	if err != nil {
		return "", false
	}
	typ := fmt.Sprintf("%T", ref.Key)
	buf := make([]byte, 0, len(ref.Kind.name)+len(typ)+2+len(data))
	buf = append(buf, ref.Kind.name...)
	buf = append(buf, 0)
	buf = append(buf, typ...)
	buf = append(buf, 0)
	buf = append(buf, data...)
	return string(buf), true
}
