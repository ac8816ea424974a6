package hpack

// Dynamic table, RFC 7541 Section 2.3.2 / 4: a FIFO of owned header
// fields with strict byte-budget accounting. Entries are stored in a
// circular buffer so insertion and eviction at the two ends never shift
// existing slots.
//
// The table tracks a soft/hard limit split rather than a single maximum:
// softLimit is the peer-negotiated budget entries are evicted against;
// hardLimit is the local upper bound the soft limit itself may never
// exceed.

type dynamicTable struct {
	entries   []HeaderField
	head      int
	count     int
	size      uint32
	softLimit uint32
	hardLimit uint32
}

func newDynamicTable(initialMax uint32) *dynamicTable {
	capacity := int(initialMax / 64)
	if capacity < 16 {
		capacity = 16
	}
	return &dynamicTable{
		entries:   make([]HeaderField, capacity),
		softLimit: initialMax,
		hardLimit: initialMax,
	}
}

// Push inserts (name, value) per RFC 7541 Section 4.4. If the candidate entry's
// size exceeds the soft limit, the entire table is cleared and the
// candidate is reported not-inserted (the caller already holds name and
// value and must not expect an index for it). Otherwise the oldest
// entries are evicted until there's room, and the candidate becomes the
// new index-62 (most recently inserted) row.
func (dt *dynamicTable) Push(name, value string) (inserted bool) {
	es := entrySize(name, value)

	if es > dt.softLimit {
		dt.clear()
		return false
	}

	for dt.size+es > dt.softLimit && dt.count > 0 {
		dt.evictOldest()
	}

	if dt.count == len(dt.entries) {
		dt.grow()
	}

	dt.head = (dt.head - 1 + len(dt.entries)) % len(dt.entries)
	dt.entries[dt.head] = HeaderField{Name: name, Value: value}
	dt.count++
	dt.size += es
	return true
}

// Get retrieves an entry by 1-based dynamic index (1 = most recent).
func (dt *dynamicTable) Get(index int) (HeaderField, bool) {
	if index < 1 || index > dt.count {
		return HeaderField{}, false
	}
	pos := (dt.head + index - 1) % len(dt.entries)
	return dt.entries[pos], true
}

// Find searches the dynamic table for a header field. index is 1-based;
// exactMatch is true only when both name and value matched.
func (dt *dynamicTable) Find(name, value string) (index int, exactMatch bool) {
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		entry := dt.entries[pos]
		if entry.Name != name {
			continue
		}
		if entry.Value == value {
			return i + 1, true
		}
		if index == 0 {
			index = i + 1
		}
	}
	return index, false
}

func (dt *dynamicTable) Len() int          { return dt.count }
func (dt *dynamicTable) Size() uint32      { return dt.size }
func (dt *dynamicTable) SoftLimit() uint32 { return dt.softLimit }
func (dt *dynamicTable) HardLimit() uint32 { return dt.hardLimit }

// SetSoftLimit changes the negotiated maximum size, evicting immediately
// (not deferred to the next push) if the new limit is smaller than the
// current size. s must not exceed the hard limit.
func (dt *dynamicTable) SetSoftLimit(s uint32) error {
	if s > dt.hardLimit {
		return tableSizeExceededf("set_dynamic_table_size_soft_limit", s)
	}
	dt.softLimit = s
	for dt.size > dt.softLimit && dt.count > 0 {
		dt.evictOldest()
	}
	return nil
}

// SetHardLimit sets the local upper bound unconditionally. If it falls
// below the current soft limit, the soft limit is pulled down to match
// and eviction cascades from that.
func (dt *dynamicTable) SetHardLimit(h uint32) {
	dt.hardLimit = h
	if h < dt.softLimit {
		dt.softLimit = h
		for dt.size > dt.softLimit && dt.count > 0 {
			dt.evictOldest()
		}
	}
}

func (dt *dynamicTable) evictOldest() {
	if dt.count == 0 {
		return
	}
	tail := (dt.head + dt.count - 1) % len(dt.entries)
	entry := dt.entries[tail]
	dt.size -= entrySize(entry.Name, entry.Value)
	dt.count--
	dt.entries[tail] = HeaderField{}
}

func (dt *dynamicTable) clear() {
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		dt.entries[pos] = HeaderField{}
	}
	dt.head = 0
	dt.count = 0
	dt.size = 0
}

func (dt *dynamicTable) grow() {
	newEntries := make([]HeaderField, len(dt.entries)*2)
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		newEntries[i] = dt.entries[pos]
	}
	dt.entries = newEntries
	dt.head = 0
}
