// Package memory implements a dynamic memory allocator over a single
// growable region, with interchangeable first-fit, best-fit and worst-fit
// block placement so their space/time trade-offs can be compared.
//
// # Overview
//
// A Heap manages one contiguous region that only grows or shrinks at its
// tail. The region is carved into blocks; each block is a 40-byte header
// followed by its payload. Headers form an address-ordered doubly linked
// list (the directory) stored inside the region itself, linked by offsets.
//
//	0x00        0x28                 0x28+size
//	+-----------+--------------------+-----------+----
//	| header    | payload            | header    | ...
//	+-----------+--------------------+-----------+----
//
// # Heap Interface
//
//   - Alloc(size): allocate a block of at least size bytes
//   - Free(ref): release a block, coalescing it with free neighbours
//   - Calloc(count, size): allocate count*size zeroed bytes
//   - Realloc(ref, size): resize in place when possible, relocate otherwise
//   - SetPolicy(p): choose FirstFit, BestFit or WorstFit for later searches
//   - Usage(), Fragmentation(): allocated/free totals and a fragmentation score
//   - Check(), Dump(w), Digest(): diagnostics
//
// # Usage Example
//
//	h, err := memory.New(memory.DefaultOptions)
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	ref, buf, err := h.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, release it
//	err = h.Free(ref)
//
// # References
//
// A Ref is the byte offset of a payload inside the region. Offset 0 is
// always a header, so NilRef (0) never names a payload and plays the role
// of a null pointer: Realloc(NilRef, n) behaves like Alloc(n).
//
// Free and Realloc validate references by reading back the payload offset
// recorded in the header. References that do not name a live allocated
// block are rejected with ErrBadRef and the heap is left untouched.
//
// # Alignment and Splitting
//
// Every payload size is rounded up to a multiple of 8. When a chosen block
// is larger than the request by at least a header plus 8 bytes it is split
// and the remainder becomes a new free block right after it.
//
// # Coalescing and Shrinking
//
// After every release the block is folded into a free predecessor and then
// absorbs all free successors, so no two adjacent blocks are ever free. A
// free block that ends up last in the directory is removed and the region
// shrinks back to its header.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally.
package memory
