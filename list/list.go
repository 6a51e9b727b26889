package list

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vessel/internal/conv"
	"github.com/hupe1980/vessel/internal/mem"
	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
)

const none = -1

// node is one arena slot.
type node struct {
	next int
	prev int
	tag  types.Tag
	data []byte
}

// shellBytes is what a node costs besides its payload.
var shellBytes = int(unsafe.Sizeof(node{}))

// Options configures a List.
type Options struct {
	// Memory is the budget nodes are reserved from. Nil means unlimited.
	Memory *resource.Controller
	// Logger receives node events. Nil discards them.
	Logger *slog.Logger
}

// Node is a view of one list element.
// Data aliases the payload until the node is removed or overwritten by Set.
type Node struct {
	Tag  types.Tag
	Data []byte
}

// Value decodes the payload according to the node's tag.
func (n Node) Value() (types.Value, error) {
	return types.Decode(n.Tag, n.Data)
}

// String renders the payload with the tag's display verb.
func (n Node) String() string {
	return types.Format(n.Tag, n.Data)
}

// List is a doubly-linked list of independently typed nodes.
type List struct {
	nodes    []node
	free     []int
	live     *roaring.Bitmap
	head     int
	cur      int
	released bool
	rc       *resource.Controller
	logger   *slog.Logger
}

// New returns an empty list.
func New(optFns ...func(o *Options)) *List {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &List{
		live:   roaring.New(),
		head:   none,
		cur:    none,
		rc:     opts.Memory,
		logger: opts.Logger,
	}
}

func (l *List) check() error {
	if l.released {
		return types.ErrReleased
	}
	return nil
}

func (l *List) view(slot int) Node {
	n := &l.nodes[slot]
	return Node{Tag: n.tag, Data: n.data}
}

// walk returns the slot at position i, or none.
func (l *List) walk(i int) int {
	if i < 0 {
		return none
	}
	s := l.head
	for ; s != none && i > 0; i-- {
		s = l.nodes[s].next
	}
	return s
}

// tail returns the last slot, or none.
func (l *List) tail() int {
	s := l.head
	if s == none {
		return none
	}
	for l.nodes[s].next != none {
		s = l.nodes[s].next
	}
	return s
}

// Length counts the nodes reachable from the head. It walks the whole list.
func (l *List) Length() int {
	n := 0
	for s := l.head; s != none; s = l.nodes[s].next {
		n++
	}
	return n
}

// Empty reports whether the list has no nodes.
func (l *List) Empty() bool {
	return l.head == none
}

func (l *List) outOfRange(i, bound int) error {
	return &types.ErrIndexOutOfRange{Index: i, Length: bound}
}

// Append adds a typed value at the end of the list.
func (l *List) Append(v types.Value) error {
	return l.Insert(l.Length(), v)
}

// AppendBytes adds a raw payload at the end of the list.
func (l *List) AppendBytes(tag types.Tag, payload []byte) error {
	return l.InsertBytes(l.Length(), tag, payload)
}

// Insert places a typed value at position i in [0, Length()], stored under v.Tag.
func (l *List) Insert(i int, v types.Value) error {
	payload, err := v.Bytes()
	if err != nil {
		return err
	}
	return l.InsertBytes(i, v.Tag, payload)
}

// InsertBytes places payload at position i in [0, Length()]. The node gets a
// buffer of tag.Width() bytes; a shorter payload is zero padded and a longer
// one is rejected. The chain is only touched once both allocations succeed.
func (l *List) InsertBytes(i int, tag types.Tag, payload []byte) error {
	if err := l.check(); err != nil {
		return err
	}

	pred, succ := none, l.head
	if i < 0 {
		return l.outOfRange(i, l.Length()+1)
	}
	if i > 0 {
		pred = l.walk(i - 1)
		if pred == none {
			return l.outOfRange(i, l.Length()+1)
		}
		succ = l.nodes[pred].next
	}

	width := tag.Width()
	if len(payload) > width {
		return fmt.Errorf("%w: %d bytes for %s", types.ErrPayloadTooLarge, len(payload), tag)
	}

	// Detached: shell and payload reserved, nothing linked yet.
	if err := l.rc.AcquireMemory(int64(shellBytes)); err != nil {
		l.logger.Warn("list node allocation rejected", "index", i, "type", tag.String(), "error", err)
		return fmt.Errorf("list: allocate node: %w", err)
	}
	data, err := mem.Alloc(l.rc, width)
	if err != nil {
		l.rc.ReleaseMemory(int64(shellBytes))
		l.logger.Warn("list payload allocation rejected", "index", i, "type", tag.String(), "bytes", width, "error", err)
		return fmt.Errorf("list: allocate %d byte payload: %w", width, err)
	}
	copy(data, payload)

	slot, key, err := l.reserveSlot()
	if err != nil {
		mem.Free(l.rc, data)
		l.rc.ReleaseMemory(int64(shellBytes))
		return err
	}

	// Linked: splice between pred and succ.
	l.nodes[slot] = node{next: succ, prev: pred, tag: tag, data: data}
	if pred != none {
		l.nodes[pred].next = slot
	} else {
		l.head = slot
	}
	if succ != none {
		l.nodes[succ].prev = slot
	}
	l.live.Add(key)

	if l.cur == none {
		l.cur = l.head
	}

	l.logger.Debug("list node inserted", "index", i, "slot", slot, "type", tag.String(), "bytes", width)
	return nil
}

// reserveSlot returns a free arena slot and its bitmap key.
func (l *List) reserveSlot() (int, uint32, error) {
	if n := len(l.free); n > 0 {
		slot := l.free[n-1]
		key, err := conv.IntToUint32(slot)
		if err != nil {
			return 0, 0, fmt.Errorf("list: %w", err)
		}
		l.free = l.free[:n-1]
		return slot, key, nil
	}
	slot := len(l.nodes)
	key, err := conv.IntToUint32(slot)
	if err != nil {
		return 0, 0, fmt.Errorf("list: arena full: %w", err)
	}
	l.nodes = append(l.nodes, node{next: none, prev: none})
	return slot, key, nil
}

// unlink removes slot from the chain and releases it.
func (l *List) unlink(slot int) {
	n := l.nodes[slot]
	if n.prev != none {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != none {
		l.nodes[n.next].prev = n.prev
	}
	if l.cur == slot {
		l.cur = l.head
	}

	// Unlinked-Pending-Free: unreachable from head, safe to release.
	mem.Free(l.rc, n.data)
	l.rc.ReleaseMemory(int64(shellBytes))
	l.nodes[slot] = node{next: none, prev: none}
	l.free = append(l.free, slot)
	l.live.Remove(uint32(slot)) //nolint:gosec // slot keys were range checked by reserveSlot
}

// Remove deletes the node at position i in [0, Length()).
// Out-of-range positions change nothing.
func (l *List) Remove(i int) error {
	if err := l.check(); err != nil {
		return err
	}
	slot := l.walk(i)
	if slot == none {
		return l.outOfRange(i, l.Length())
	}
	l.unlink(slot)
	l.logger.Debug("list node removed", "index", i, "slot", slot)
	return nil
}

// Pop removes the last node. It returns types.ErrEmpty on an empty list.
func (l *List) Pop() error {
	if err := l.check(); err != nil {
		return err
	}
	slot := l.tail()
	if slot == none {
		return types.ErrEmpty
	}
	l.unlink(slot)
	return nil
}

// Clear pops until the list is empty.
func (l *List) Clear() error {
	if err := l.check(); err != nil {
		return err
	}
	for !l.Empty() {
		if err := l.Pop(); err != nil {
			return err
		}
	}
	return nil
}

// At returns the node at position i.
func (l *List) At(i int) (Node, error) {
	if err := l.check(); err != nil {
		return Node{}, err
	}
	slot := l.walk(i)
	if slot == none {
		return Node{}, l.outOfRange(i, l.Length())
	}
	return l.view(slot), nil
}

// Get returns a copy of the payload at position i and its tag.
func (l *List) Get(i int) ([]byte, types.Tag, error) {
	n, err := l.At(i)
	if err != nil {
		return nil, 0, err
	}
	return append([]byte(nil), n.Data...), n.Tag, nil
}

// GetValue decodes the payload at position i.
func (l *List) GetValue(i int) (types.Value, error) {
	n, err := l.At(i)
	if err != nil {
		return types.Value{}, err
	}
	return n.Value()
}

// Set replaces the node at position i with a typed value stored under v.Tag.
func (l *List) Set(i int, v types.Value) error {
	payload, err := v.Bytes()
	if err != nil {
		return err
	}
	return l.SetBytes(i, v.Tag, payload)
}

// SetBytes replaces the tag and payload at position i. When the new tag has a
// different width the payload buffer is reallocated; on failure the node keeps
// its old tag and payload.
func (l *List) SetBytes(i int, tag types.Tag, payload []byte) error {
	if err := l.check(); err != nil {
		return err
	}
	slot := l.walk(i)
	if slot == none {
		return l.outOfRange(i, l.Length())
	}

	width := tag.Width()
	if len(payload) > width {
		return fmt.Errorf("%w: %d bytes for %s", types.ErrPayloadTooLarge, len(payload), tag)
	}

	n := &l.nodes[slot]
	data := n.data
	if len(data) != width {
		var err error
		data, err = mem.Realloc(l.rc, n.data, width)
		if err != nil {
			l.logger.Warn("list payload reallocation rejected", "index", i, "type", tag.String(), "bytes", width, "error", err)
			return fmt.Errorf("list: reallocate payload to %d bytes: %w", width, err)
		}
	}
	m := copy(data, payload)
	clear(data[m:])
	n.data = data
	n.tag = tag
	return nil
}

// Bytes returns the memory held by the list: descriptor, node shells and payloads.
func (l *List) Bytes() int {
	size := int(unsafe.Sizeof(*l))
	for s := l.head; s != none; s = l.nodes[s].next {
		size += shellBytes + len(l.nodes[s].data)
	}
	return size
}

// Slots returns the arena capacity: live plus recyclable slots.
func (l *List) Slots() int {
	return len(l.nodes)
}

// All iterates over position/node pairs from the head.
func (l *List) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		i := 0
		for s := l.head; s != none; s = l.nodes[s].next {
			if !yield(i, l.view(s)) {
				return
			}
			i++
		}
	}
}

// Free releases every node, walking from the tail, and then the list.
// Any later call, including Free, returns types.ErrReleased.
func (l *List) Free() error {
	if err := l.check(); err != nil {
		return err
	}
	for s := l.tail(); s != none; {
		prev := l.nodes[s].prev
		l.unlink(s)
		s = prev
	}
	l.logger.Debug("list released", "slots", len(l.nodes))
	l.nodes = nil
	l.free = nil
	l.live.Clear()
	l.cur = none
	l.released = true
	return nil
}

// Released reports whether Free has been called.
func (l *List) Released() bool { return l.released }

// Debug writes a human-readable dump of the list to w.
func (l *List) Debug(w io.Writer) error {
	if _, err := fmt.Fprintf(w, " --- LIST DEBUG ---\n Size: %d bytes\n Length: %d items\n", l.Bytes(), l.Length()); err != nil {
		return err
	}
	for i, n := range l.All() {
		if _, err := fmt.Fprintf(w, " %d) %s -> %s\n", i, n.Tag, n); err != nil {
			return err
		}
	}
	return nil
}
