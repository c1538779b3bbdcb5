//go:build !linux || !amd64

package arena

func newBacking(capacity int) backing {
	return &heapBacking{data: make([]byte, capacity)}
}
