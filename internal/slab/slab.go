// Package slab implements the general-purpose heap: a fixed-size-class
// allocator (8..1024 bytes) that grows each class by carving one buddy
// block at a time.
package slab

import (
	"errors"
	"unsafe"

	"mazarin/internal/buddy"
)

// SizeClasses are the slab's fixed allocation sizes, smallest to largest.
var SizeClasses = [...]uint32{8, 16, 32, 64, 128, 256, 512, 1024}

var (
	// ErrUninitializedAllocator is returned when Allocate/Free run before
	// the backing buddy allocator has been installed.
	ErrUninitializedAllocator = errors.New("slab: buddy allocator not installed")
	// ErrUnsupportedSize surfaces a buddy-level size failure when a
	// request larger than the biggest slab class is forwarded to the
	// buddy.
	ErrUnsupportedSize = buddy.ErrUnsupportedSize
)

type freeListNode struct {
	next uintptr
}

func nodeAt(addr uintptr) *freeListNode {
	return (*freeListNode)(unsafe.Pointer(addr))
}

type classFreeList struct {
	head uintptr
}

func (l *classFreeList) push(addr uintptr) {
	nodeAt(addr).next = l.head
	l.head = addr
}

func (l *classFreeList) pop() (uintptr, bool) {
	if l.head == 0 {
		return 0, false
	}
	addr := l.head
	l.head = nodeAt(addr).next
	return addr, true
}

// Allocator is the slab/fixed-block allocator. The zero value is not
// usable; construct with New and call Init once the buddy backing is
// available.
type Allocator struct {
	freeLists [len(SizeClasses)]classFreeList
	backing   *buddy.Allocator
}

// New constructs an uninitialized Allocator; calls before Init return
// ErrUninitializedAllocator since the buddy backing it isn't installed yet.
func New() *Allocator {
	return &Allocator{}
}

// Init installs the buddy allocator this slab grows from.
func (a *Allocator) Init(backing *buddy.Allocator) {
	a.backing = backing
}

func classIndexFor(n uint32) (int, bool) {
	for i, size := range SizeClasses {
		if size >= n {
			return i, true
		}
	}
	return 0, false
}

// Allocate returns a chunk of at least n bytes. Requests larger than the
// biggest size class are forwarded directly to the buddy allocator.
func (a *Allocator) Allocate(n uint32) (uintptr, error) {
	idx, ok := classIndexFor(n)
	if !ok {
		if a.backing == nil {
			return 0, ErrUninitializedAllocator
		}
		return a.backing.Allocate(n)
	}

	if a.freeLists[idx].head == 0 {
		if err := a.growFreeList(idx); err != nil {
			return 0, err
		}
	}

	addr, _ := a.freeLists[idx].pop()
	return addr, nil
}

// growFreeList pulls one smallest-class block from the buddy and carves it
// into chunks of this class's size, pushing all of them onto the free
// list.
func (a *Allocator) growFreeList(classIndex int) error {
	if a.backing == nil {
		return ErrUninitializedAllocator
	}

	chunkSize := a.backing.SmallestBlockSize()
	block, err := a.backing.Allocate(chunkSize)
	if err != nil {
		return err
	}

	classSize := SizeClasses[classIndex]
	count := chunkSize / classSize
	// push is LIFO, so carve and push in descending order: the last push
	// (index 0, the front of the block) ends up on top, and the first
	// Allocate after a grow returns block+0, then block+classSize, and so
	// on forward through the block.
	for i := count; i > 0; i-- {
		a.freeLists[classIndex].push(block + uintptr((i-1)*classSize))
	}
	return nil
}

// Free returns block (allocated for size n) to its class free list, or
// forwards to the buddy for requests beyond the biggest class.
func (a *Allocator) Free(block uintptr, n uint32) error {
	if a.backing == nil {
		return ErrUninitializedAllocator
	}
	idx, ok := classIndexFor(n)
	if !ok {
		return a.backing.Free(block, n)
	}
	a.freeLists[idx].push(block)
	return nil
}
