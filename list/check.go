package list

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrCorrupt is returned by Check when the chain violates a structural invariant.
var ErrCorrupt = errors.New("list: corrupt chain")

// Check verifies the structural invariants of the list: the chain from the
// head is acyclic, every back link mirrors its forward link, the head has no
// predecessor and the reachable slots are exactly the live slots.
func (l *List) Check() error {
	if err := l.check(); err != nil {
		return err
	}

	seen := roaring.New()
	prev := none
	for s := l.head; s != none; s = l.nodes[s].next {
		if s < 0 || s >= len(l.nodes) {
			return fmt.Errorf("%w: slot %d outside arena of %d", ErrCorrupt, s, len(l.nodes))
		}
		key := uint32(s) //nolint:gosec // bounded by the arena check above
		if seen.Contains(key) {
			return fmt.Errorf("%w: cycle at slot %d", ErrCorrupt, s)
		}
		seen.Add(key)

		n := l.nodes[s]
		if n.prev != prev {
			return fmt.Errorf("%w: slot %d has prev %d, want %d", ErrCorrupt, s, n.prev, prev)
		}
		if len(n.data) != n.tag.Width() {
			return fmt.Errorf("%w: slot %d holds %d bytes for %s", ErrCorrupt, s, len(n.data), n.tag)
		}
		prev = s
	}

	if !seen.Equals(l.live) {
		return fmt.Errorf("%w: %d reachable slots, %d live", ErrCorrupt, seen.GetCardinality(), l.live.GetCardinality())
	}
	for _, s := range l.free {
		if l.live.Contains(uint32(s)) { //nolint:gosec // free slots come from the arena
			return fmt.Errorf("%w: free slot %d is live", ErrCorrupt, s)
		}
	}
	if got, want := len(l.free)+int(seen.GetCardinality()), len(l.nodes); got != want {
		return fmt.Errorf("%w: %d live plus free slots in an arena of %d", ErrCorrupt, got, want)
	}
	return nil
}
