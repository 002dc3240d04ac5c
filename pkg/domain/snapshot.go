package domain

// Snapshot captures the mutable state of a network so that a long run can be
// persisted and resumed.
type Snapshot struct {
	// Pushes is the number of triggers run since the network was built.
	Pushes int `json:"pushes"`

	// FlipFlops holds the on flag of every flip-flop.
	FlipFlops map[ID]bool `json:"flip_flops"`

	// Conjunctions holds the remembered level of every input of every conjunction.
	Conjunctions map[ID]map[ID]Level `json:"conjunctions"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		FlipFlops:    make(map[ID]bool),
		Conjunctions: make(map[ID]map[ID]Level),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	cp := NewSnapshot()
	cp.Pushes = s.Pushes
	for id, on := range s.FlipFlops {
		cp.FlipFlops[id] = on
	}
	for id, mem := range s.Conjunctions {
		m := make(map[ID]Level, len(mem))
		for in, l := range mem {
			m[in] = l
		}
		cp.Conjunctions[id] = m
	}
	return cp
}
