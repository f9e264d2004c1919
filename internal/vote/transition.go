package vote

// delta is the state change one vote request produces.
type delta struct {
	next  Direction // voter's direction after the request, None = row removed
	dUp   int
	dDown int
}

func (d *delta) bump(dir Direction, by int) {
	if dir == Up {
		d.dUp += by
	} else {
		d.dDown += by
	}
}

// transition implements the toggle rules: the same direction again
// removes the vote, the opposite direction switches it, and a fresh
// voter adds it. Counter deltas move in lockstep with the map entry.
func transition(prev, dir Direction) delta {
	var d delta
	switch {
	case prev == dir: // toggle-off
		d.next = None
		d.bump(dir, -1)
	case prev == None: // first vote
		d.next = dir
		d.bump(dir, +1)
	default: // switch
		d.next = dir
		d.bump(prev, -1)
		d.bump(dir, +1)
	}
	return d
}
