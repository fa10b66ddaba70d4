package hpack

// table combines the static and dynamic tables into the single index space
// HPACK field representations address: indices 1-61 are the static table,
// 62+ are the dynamic table, newest first (RFC 7541 Section 2.3.3).
type table struct {
	dynamic *dynamicTable
}

// newTable creates a combined index table with a dynamic table bounded by
// maxDynamicSize.
func newTable(maxDynamicSize uint32) *table {
	return &table{dynamic: newDynamicTable(maxDynamicSize)}
}

// Get retrieves the header field at the given absolute index.
func (t *table) Get(index int) (HeaderField, bool) {
	if index <= 0 {
		return HeaderField{}, false
	}
	if index <= staticTableSize {
		return staticGet(index)
	}
	return t.dynamic.Get(index - staticTableSize)
}

// Add inserts hf into the dynamic table.
func (t *table) Add(hf HeaderField) {
	t.dynamic.Add(hf)
}

// matchKind classifies the result of a table search (spec section 4.4).
type matchKind int

const (
	noMatch matchKind = iota
	nameMatch
	fullMatch
)

// Find searches the combined index space for name and value, preferring a
// full match over a name-only match, and the lowest (static, then newest
// dynamic) index when several entries tie. The static table is searched
// first since its indices are always lower.
func (t *table) Find(name, value string) (index int, kind matchKind) {
	staticIdx, staticExact := staticFind(name, value)
	if staticExact {
		return staticIdx, fullMatch
	}

	dynamicIdx, dynamicExact := t.dynamic.Find(name, value)
	if dynamicIdx > 0 {
		absolute := staticTableSize + dynamicIdx
		if dynamicExact {
			return absolute, fullMatch
		}
		if staticIdx == 0 {
			return absolute, nameMatch
		}
	}

	if staticIdx > 0 {
		return staticIdx, nameMatch
	}

	return 0, noMatch
}
