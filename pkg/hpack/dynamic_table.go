package hpack

// HPACK Dynamic Table - RFC 7541 Section 2.3
//
// The dynamic table consists of a list of header fields maintained in FIFO
// order. Entries are added to the beginning and evicted from the end when
// the table exceeds its size. Dynamic table indices start at 62 (static
// table occupies 1-61); dynamicTable itself is indexed 1-based from its
// own head, translation to the combined space happens in table.go.

// dynamicTable implements the HPACK dynamic table as a circular buffer.
type dynamicTable struct {
	entries []HeaderField // circular buffer of entries
	head    int           // index of newest entry
	count   int           // number of entries
	size    uint32        // current size in bytes
	maxSize uint32        // maximum size in bytes
}

// entrySize calculates the size of a header field per RFC 7541 Section 4.1:
// the size of an entry is the sum of its name's length in octets, its
// value's length in octets, and 32 (overhead).
func entrySize(name, value string) uint32 {
	return uint32(len(name) + len(value) + 32)
}

// newDynamicTable creates a new dynamic table with the specified maximum
// size.
func newDynamicTable(maxSize uint32) *dynamicTable {
	// Pre-allocate for the common case (4096 bytes / ~64 bytes per entry).
	capacity := int(maxSize / 64)
	if capacity < 16 {
		capacity = 16
	}

	return &dynamicTable{
		entries: make([]HeaderField, capacity),
		maxSize: maxSize,
	}
}

// Add inserts hf at the head of the dynamic table, evicting entries from
// the tail as needed to stay within maxSize (RFC 7541 Section 4.4). If hf
// alone is larger than maxSize, the table ends up empty and hf is not
// stored — the insertion is still considered to have "succeeded" per the
// RFC, since the resulting empty table is a valid state.
func (dt *dynamicTable) Add(hf HeaderField) {
	size := entrySize(hf.Name, hf.Value)

	for dt.size+size > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}

	if size > dt.maxSize {
		return
	}

	if dt.count == len(dt.entries) {
		dt.resize()
	}

	dt.head = (dt.head - 1 + len(dt.entries)) % len(dt.entries)
	dt.entries[dt.head] = hf
	dt.count++
	dt.size += size
}

// Get retrieves an entry by dynamic table index (1-based, where 1 is the
// newest entry).
func (dt *dynamicTable) Get(index int) (HeaderField, bool) {
	if index < 1 || index > dt.count {
		return HeaderField{}, false
	}
	pos := (dt.head + index - 1) % len(dt.entries)
	return dt.entries[pos], true
}

// Find searches for a header field in the dynamic table. Returns (index,
// exactMatch) where index is 1-based (1 = newest entry), 0 if no match at
// all. exactMatch is true if both name and value match; otherwise, if any
// name-only match exists, the first (newest) one is returned with
// exactMatch false.
func (dt *dynamicTable) Find(name, value string) (index int, exactMatch bool) {
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		entry := dt.entries[pos]

		if entry.Name == name {
			if entry.Value == value {
				return i + 1, true
			}
			if index == 0 {
				index = i + 1
			}
		}
	}
	return index, false
}

// Len returns the number of entries in the dynamic table.
func (dt *dynamicTable) Len() int {
	return dt.count
}

// Size returns the current size of the dynamic table in bytes.
func (dt *dynamicTable) Size() uint32 {
	return dt.size
}

// MaxSize returns the maximum size of the dynamic table in bytes.
func (dt *dynamicTable) MaxSize() uint32 {
	return dt.maxSize
}

// SetMaxSize changes the maximum size of the dynamic table, evicting
// entries from the tail if the current size now exceeds it.
func (dt *dynamicTable) SetMaxSize(maxSize uint32) {
	dt.maxSize = maxSize
	for dt.size > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}
}

// evictOldest removes the oldest (tail) entry from the dynamic table.
func (dt *dynamicTable) evictOldest() {
	if dt.count == 0 {
		return
	}

	recordEviction()

	tail := (dt.head + dt.count - 1) % len(dt.entries)
	entry := dt.entries[tail]

	dt.size -= entrySize(entry.Name, entry.Value)
	dt.count--
	dt.entries[tail] = HeaderField{}
}

// resize doubles the capacity of the circular buffer.
func (dt *dynamicTable) resize() {
	newEntries := make([]HeaderField, len(dt.entries)*2)

	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		newEntries[i] = dt.entries[pos]
	}

	dt.entries = newEntries
	dt.head = 0
}

// Reset clears all entries from the dynamic table.
func (dt *dynamicTable) Reset() {
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		dt.entries[pos] = HeaderField{}
	}
	dt.head = 0
	dt.count = 0
	dt.size = 0
}
