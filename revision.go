package inq

import "strconv"

// Revision is a logical timestamp bumped on every input mutation. Revisions
// are only ever compared for order; a new database starts at revision 0.
type Revision uint64

func (r Revision) String() string {
	return "r" + strconv.FormatUint(uint64(r), 10)
}
