package hpack

// table is the unified index space over the static and dynamic tables:
// indices 1..=61 resolve to the static table, 62..=(61+|dynamic|) to the
// dynamic table, with 62 being the most recently inserted entry.
type table struct {
	dynamic *dynamicTable
}

func newTable(initialMax uint32) *table {
	return &table{dynamic: newDynamicTable(initialMax)}
}

// get resolves an absolute index to its header field.
func (t *table) get(index int) (HeaderField, bool) {
	if index <= 0 {
		return HeaderField{}, false
	}
	if index <= StaticTableSize {
		hf, _ := getStaticByIndex(index)
		return hf, true
	}
	return t.dynamic.Get(index - StaticTableSize)
}

// validateIndex performs the same range check as get without
// materializing an entry, for the encoder's caller-supplied-index path.
func (t *table) validateIndex(index int) bool {
	return index > 0 && index <= t.len()
}

func (t *table) len() int {
	return StaticTableSize + t.dynamic.Len()
}

// find searches static then dynamic for (name, value), returning an
// absolute index. An exact (name+value) match in either table wins; a
// name-only match prefers the static table (since static indices are
// smaller and therefore cheaper to encode) unless only the dynamic table
// has a name match at all.
func (t *table) find(name, value string) (index int, exactMatch bool) {
	staticIdx, staticExact := FindStaticIndex(name, value)
	if staticExact {
		return staticIdx, true
	}

	dynIdx, dynExact := t.dynamic.Find(name, value)
	if dynIdx > 0 {
		absolute := StaticTableSize + dynIdx
		if dynExact {
			return absolute, true
		}
		if staticIdx == 0 {
			return absolute, false
		}
	}

	if staticIdx > 0 {
		return staticIdx, false
	}
	return 0, false
}

// push inserts a literal-with-incremental-indexing entry into the
// dynamic table. inserted is false when the entry was larger than the
// soft limit and the table was cleared instead (RFC 7541 Section 4.4).
func (t *table) push(name, value string) (inserted bool) {
	return t.dynamic.Push(name, value)
}
