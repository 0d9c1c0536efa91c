package engine

// Memo maps a position hash to a score for the lifetime of one root-move
// task. It is owned by a single goroutine and never shared.
type Memo struct {
	entries map[uint64]float32
	hits    uint64
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[uint64]float32, 1<<12)}
}

func (m *Memo) Lookup(hash uint64) (float32, bool) {
	score, ok := m.entries[hash]
	if ok {
		m.hits++
	}
	return score, ok
}

// Store records score under hash unless it is a mate-range score, whose mate
// distance bonus only holds at the ply it was found.
func (m *Memo) Store(hash uint64, score float32) bool {
	if !cacheable(score) {
		return false
	}
	m.entries[hash] = score
	return true
}

func (m *Memo) Len() int { return len(m.entries) }

func (m *Memo) Hits() uint64 { return m.hits }

func cacheable(score float32) bool {
	return score > -MateScore && score < MateScore
}
