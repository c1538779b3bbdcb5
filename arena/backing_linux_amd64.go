//go:build linux && amd64

package arena

import (
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// mmapBacking backs an Arena with an anonymous mmap region advised for
// transparent huge pages: a bump allocator that is heavily reused across
// queries benefits from the TLB-miss reduction a huge page gives, and the
// region never needs to interact with the Go GC since it holds no pointers
// the collector must trace.
type mmapBacking struct {
	data []byte
}

func newBacking(capacity int) backing {
	if capacity <= 0 {
		return &mmapBacking{data: nil}
	}
	data, err := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		// Falling back to a heap buffer keeps the arena usable under
		// sandboxes that forbid anonymous mmap; it is not a query-time
		// error because it happens at Arena construction, not mid-query.
		log.Printf("arena: mmap failed (%v), falling back to heap buffer", err)
		return &heapBacking{data: make([]byte, capacity)}
	}
	if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
		log.Printf("arena: madvise(MADV_HUGEPAGE) failed (%v), continuing without it", err)
	}
	return &mmapBacking{data: data}
}

func (b *mmapBacking) bytes() []byte { return b.data }

func (b *mmapBacking) close() error {
	if b.data == nil {
		return nil
	}
	return unix.Munmap(b.data)
}
