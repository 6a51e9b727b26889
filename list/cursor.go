package list

// Begin moves the cursor to the head and returns that node.
func (l *List) Begin() (Node, bool) {
	l.cur = l.head
	return l.current()
}

// End moves the cursor to the last node and returns it.
func (l *List) End() (Node, bool) {
	l.cur = l.tail()
	return l.current()
}

// Current returns the node under the cursor.
func (l *List) Current() (Node, bool) {
	return l.current()
}

// Next advances the cursor. At the last node it stays put and returns false.
func (l *List) Next() (Node, bool) {
	if l.cur == none || l.nodes[l.cur].next == none {
		return Node{}, false
	}
	l.cur = l.nodes[l.cur].next
	return l.current()
}

// Prev moves the cursor back. At the head it stays put and returns false.
func (l *List) Prev() (Node, bool) {
	if l.cur == none || l.nodes[l.cur].prev == none {
		return Node{}, false
	}
	l.cur = l.nodes[l.cur].prev
	return l.current()
}

func (l *List) current() (Node, bool) {
	if l.released || l.cur == none {
		return Node{}, false
	}
	return l.view(l.cur), true
}
