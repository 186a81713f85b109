package buddy

import "unsafe"

// freeListNode is written into the first bytes of every free block. A free
// block has no other use for its own storage, so the list's node headers
// live inside the blocks they describe rather than in a separately
// allocated structure.
type freeListNode struct {
	next uintptr // address of next free block's node, 0 if none
	prev uintptr // address of previous free block's node, 0 if none
}

func nodeAt(addr uintptr) *freeListNode {
	return (*freeListNode)(unsafe.Pointer(addr))
}

// FreeList is a doubly linked list of free block addresses for one size
// class. The zero value is an empty list.
type FreeList struct {
	head uintptr
	tail uintptr
	len  int
}

// Len reports how many blocks are currently on the list.
func (l *FreeList) Len() int { return l.len }

// PushHead writes a node header into the block at addr and inserts it at
// the head of the list, write-then-link: the header is fully written
// before any neighbor pointer is updated, so a concurrent reader of the
// list (there is none in this single-CPU design, but the discipline still
// avoids tearing a node mid-write) never observes a half-built node.
func (l *FreeList) PushHead(addr uintptr) {
	node := nodeAt(addr)
	node.next = l.head
	node.prev = 0

	if l.head != 0 {
		nodeAt(l.head).prev = addr
	} else {
		l.tail = addr
	}
	l.head = addr
	l.len++
}

// PopHead removes and returns the address at the head of the list, or
// ok=false if the list is empty.
func (l *FreeList) PopHead() (addr uintptr, ok bool) {
	if l.head == 0 {
		return 0, false
	}
	addr = l.head
	node := nodeAt(addr)
	l.head = node.next
	if l.head != 0 {
		nodeAt(l.head).prev = 0
	} else {
		l.tail = 0
	}
	l.len--
	return addr, true
}

// RemoveAt splices the node at addr out of the list, wherever it sits. It
// is the caller's responsibility to know addr is actually a member of this
// list (the buddy allocator only calls this when a bitmap bit already
// proved the buddy is on its own free list).
func (l *FreeList) RemoveAt(addr uintptr) {
	node := nodeAt(addr)

	if node.prev != 0 {
		nodeAt(node.prev).next = node.next
	} else {
		l.head = node.next
	}

	if node.next != 0 {
		nodeAt(node.next).prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.len--
}
