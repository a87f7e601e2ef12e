package lr

// Terminal bit set used for LR(1) item lookaheads.
type lookaheadSet []uint64

func newLookaheadSet(numTerminals int) lookaheadSet {
	return make(lookaheadSet, (numTerminals+63)/64)
}

func (set lookaheadSet) add(terminal int) bool {
	word := terminal / 64
	bit := uint64(1) << (terminal % 64)
	if set[word]&bit != 0 {
		return false
	}
	set[word] |= bit
	return true
}

// union adds other's members to set.  Returns true if set changed.
func (set lookaheadSet) union(other lookaheadSet) bool {
	changed := false
	for idx, word := range other {
		merged := set[idx] | word
		if merged != set[idx] {
			set[idx] = merged
			changed = true
		}
	}
	return changed
}

func (set lookaheadSet) clone() lookaheadSet {
	result := make(lookaheadSet, len(set))
	copy(result, set)
	return result
}

func (set lookaheadSet) members() []int {
	result := []int{}
	for idx, word := range set {
		for bit := 0; bit < 64; bit++ {
			if word&(uint64(1)<<bit) != 0 {
				result = append(result, idx*64+bit)
			}
		}
	}
	return result
}
