package engine

// entry is a packed transposition table slot.
type entry struct {
	key   uint64
	score int32
	move  int16
	depth uint8
	flag  Flag
	age   uint8
}

// entrySize is the allocation cost per slot used by Resize.
const entrySize = 24

// Table is the hash-indexed transposition table used as the engine Cache.
// The slot count is a power of two for cheap indexing; replacement prefers
// entries from older searches and deeper results within the current one.
type Table struct {
	entries []entry
	mask    uint64
	age     uint8

	// found points at the entry matched by the last Find.
	found *entry

	probes uint64
	hits   uint64
}

// NewTable creates a table with the given size in megabytes.
func NewTable(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB << 20)
	return t
}

// Resize reallocates the table for the given size in bytes, discarding all
// stored entries.
func (t *Table) Resize(bytes int) {
	slots := roundDownToPowerOfTwo(uint64(bytes) / entrySize)
	if slots == 0 {
		slots = 1
	}
	t.entries = make([]entry, slots)
	t.mask = slots - 1
	t.age = 0
	t.found = nil
	t.probes = 0
	t.hits = 0
}

// Size returns the number of slots in the table.
func (t *Table) Size() int {
	return len(t.entries)
}

// Find looks up the position and latches the matched entry for the
// getters. The full hash is stored per slot, so a match is trusted.
func (t *Table) Find(g Game) bool {
	t.probes++

	slot := &t.entries[g.Hash()&t.mask]
	if slot.flag != Empty && slot.key == g.Hash() {
		t.hits++
		t.found = slot
		return true
	}
	t.found = nil
	return false
}

// Score returns the score of the entry matched by the last Find.
func (t *Table) Score() int {
	if t.found == nil {
		return 0
	}
	return int(t.found.score)
}

// Move returns the best move of the entry matched by the last Find.
func (t *Table) Move() int {
	if t.found == nil {
		return NullMove
	}
	return int(t.found.move)
}

// Depth returns the depth of the entry matched by the last Find.
func (t *Table) Depth() int {
	if t.found == nil {
		return 0
	}
	return int(t.found.depth)
}

// Flag returns the bound flag of the entry matched by the last Find.
func (t *Table) Flag() Flag {
	if t.found == nil {
		return Empty
	}
	return t.found.flag
}

// Store records a search result for the position. A slot is overwritten
// when it is empty, belongs to an older search, or holds a result that is
// not deeper than the new one.
func (t *Table) Store(g Game, score, move, depth int, flag Flag) {
	slot := &t.entries[g.Hash()&t.mask]
	if slot.flag != Empty && slot.age == t.age && int(slot.depth) > depth {
		return
	}

	slot.key = g.Hash()
	slot.score = int32(score)
	slot.move = int16(move)
	slot.depth = uint8(depth)
	slot.flag = flag
	slot.age = t.age
}

// Discharge advances the age so entries from earlier searches become
// preferred victims for replacement.
func (t *Table) Discharge() {
	t.age++
}

// Clear removes all stored entries.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.age = 0
	t.found = nil
	t.probes = 0
	t.hits = 0
}

// HitRate returns the fraction of probes that matched, as a percentage.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}

// HashFull samples the table and returns its utilization in permille.
func (t *Table) HashFull() int {
	sample := 1000
	if sample > len(t.entries) {
		sample = len(t.entries)
	}

	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].flag != Empty && t.entries[i].age == t.age {
			used++
		}
	}
	return used * 1000 / sample
}

func roundDownToPowerOfTwo(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}
