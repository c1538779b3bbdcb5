package matcher

// Record is one Report emission: a slice and the rank-0 quadword offset
// within it, plus the accumulator bits live at that offset. Bit enumeration
// (turning Bits into individual document ids) happens in the consumer, not
// here.
type Record struct {
	SliceIndex uint32
	Offset     uint32
	Bits       uint64
}

// ResultsBuffer is the bounded, append-only buffer Report writes into. It
// is exclusive to one query: a single matcher goroutine appends to it, so
// it needs no internal locking.
type ResultsBuffer struct {
	records  []Record
	capacity int
}

// NewResultsBuffer allocates a buffer sized at plan time. Appending past
// capacity is fatal for the query; the buffer is never
// grown mid-query.
func NewResultsBuffer(capacity int) *ResultsBuffer {
	return &ResultsBuffer{records: make([]Record, 0, capacity), capacity: capacity}
}

// Append records one match. It returns ErrResultsBufferFull once capacity
// is reached; the caller must treat this as a fatal query error and
// discard whatever the buffer holds so far rather than partially consume
// it — an aborted query yields no results, not some.
func (rb *ResultsBuffer) Append(sliceIndex, offset uint32, bits uint64) error {
	if len(rb.records) >= rb.capacity {
		return ErrResultsBufferFull
	}
	rb.records = append(rb.records, Record{SliceIndex: sliceIndex, Offset: offset, Bits: bits})
	return nil
}

// Records returns every match appended so far, in (slice, offset) order
// within each shard's interpreter run.
func (rb *ResultsBuffer) Records() []Record { return rb.records }

// Len returns how many records have been appended.
func (rb *ResultsBuffer) Len() int { return len(rb.records) }

// Cap returns the buffer's plan-time capacity.
func (rb *ResultsBuffer) Cap() int { return rb.capacity }

// Reset empties the buffer for reuse by a new query, without reallocating.
func (rb *ResultsBuffer) Reset() { rb.records = rb.records[:0] }
