// Package list implements a heterogeneous doubly-linked list.
//
// Every node carries its own type tag and an exclusively owned payload sized
// to the tag's width, so one list can hold an int, a double, a 20-byte string
// and an opaque 112-byte blob side by side:
//
//	l := list.New()
//	_ = l.Append(types.Int(99))
//	_ = l.Append(types.String(types.TagStr20, "Hello World!"))
//	_ = l.AppendBytes(types.Other(len(raw)), raw)
//
// # Layout
//
// Nodes live in an arena of slots. next and prev are slot indices (-1 for
// none), removed slots go on a free stack and are reused by later inserts, and
// a roaring bitmap records which slots are live. Check walks the chain and
// verifies that it is acyclic, that every back link mirrors its forward link
// and that the reachable slots are exactly the live ones.
//
// # Cost Model
//
// Positions are resolved by walking from the head, so At, Get, Set, Insert
// and Remove are O(n). Length is not cached and walks the whole chain on every
// call; callers looping over positions should read it once.
//
// The cursor (Begin, End, Next, Prev, Current) is a transient traversal
// position and is not part of the list's structure. Removing the node under
// the cursor moves it back to the head.
package list
