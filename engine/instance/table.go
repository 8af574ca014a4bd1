package instance

import "fmt"

// Table is the frame-scoped instance table: a densely indexed, append-only
// list of GPU instance records uploaded as one storage buffer each frame.
// Vertex records address into it by integer index, so the table must be
// rebuilt in the same order the vertex stream was stamped.
type Table struct {
	records []GPUInstance
}

// NewTable creates an empty Table with capacity for the expected number of
// instances this frame.
//
// Parameters:
//   - capacity: expected record count (0 is fine)
//
// Returns:
//   - *Table: the new table
func NewTable(capacity int) *Table {
	return &Table{records: make([]GPUInstance, 0, capacity)}
}

// Append adds a record to the table and returns its index. Indices are
// assigned in append order starting at 0.
//
// Parameters:
//   - record: the GPU instance record
//
// Returns:
//   - uint32: the index the record occupies
func (t *Table) Append(record GPUInstance) uint32 {
	t.records = append(t.records, record)
	return uint32(len(t.records) - 1)
}

// At returns the record at the given index. Out-of-range indices are a
// producer bug upstream of the GPU, reported as an error here rather than
// left for the shader's defensive clamp to hide.
//
// Parameters:
//   - index: the table index
//
// Returns:
//   - GPUInstance: the record at that index
//   - error: an error if index is out of range
func (t *Table) At(index uint32) (GPUInstance, error) {
	if int(index) >= len(t.records) {
		return GPUInstance{}, fmt.Errorf("instance index %d out of range, table holds %d records", index, len(t.records))
	}
	return t.records[index], nil
}

// Len returns the number of records in the table.
//
// Returns:
//   - int: the record count
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the underlying record slice. Callers must not mutate it.
//
// Returns:
//   - []GPUInstance: the records in index order
func (t *Table) Records() []GPUInstance {
	return t.records
}

// Marshal serializes the whole table into a byte buffer suitable for GPU
// storage buffer upload. Records appear in index order, 144 bytes each.
//
// Returns:
//   - []byte: the packed buffer (len = 144 * Len())
func (t *Table) Marshal() []byte {
	buf := make([]byte, 0, len(t.records)*144)
	for i := range t.records {
		buf = append(buf, t.records[i].Marshal()...)
	}
	return buf
}

// ValidateIndices checks that every instance index in the given vertex
// index list addresses a record in this table. Run once per frame before
// upload; the shader does not range-check.
//
// Parameters:
//   - indices: the instance indices stamped onto the frame's vertices
//
// Returns:
//   - error: an error naming the first out-of-range index, or nil
func (t *Table) ValidateIndices(indices []uint32) error {
	for i, idx := range indices {
		if int(idx) >= len(t.records) {
			return fmt.Errorf("vertex %d references instance %d, table holds %d records", i, idx, len(t.records))
		}
	}
	return nil
}
