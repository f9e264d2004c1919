package vote

import "testing"

func TestTransitionRules(t *testing.T) {
	tests := []struct {
		name  string
		prev  Direction
		dir   Direction
		next  Direction
		dUp   int
		dDown int
	}{
		{"first up", None, Up, Up, +1, 0},
		{"first down", None, Down, Down, 0, +1},
		{"toggle off up", Up, Up, None, -1, 0},
		{"toggle off down", Down, Down, None, 0, -1},
		{"switch up to down", Up, Down, Down, -1, +1},
		{"switch down to up", Down, Up, Up, +1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := transition(tc.prev, tc.dir)
			if d.next != tc.next || d.dUp != tc.dUp || d.dDown != tc.dDown {
				t.Errorf("transition(%q, %q) = (%q, %+d, %+d), want (%q, %+d, %+d)",
					tc.prev, tc.dir, d.next, d.dUp, d.dDown, tc.next, tc.dUp, tc.dDown)
			}
		})
	}
}

// ledger is a direct simulation of the toggle rules: a vote map plus the
// counters moved by transition deltas.
type ledger struct {
	votes    map[string]Direction
	up, down int
}

func newLedger() *ledger { return &ledger{votes: map[string]Direction{}} }

func (l *ledger) cast(voter string, dir Direction) Direction {
	d := transition(l.votes[voter], dir)
	if d.next == None {
		delete(l.votes, voter)
	} else {
		l.votes[voter] = d.next
	}
	l.up += d.dUp
	l.down += d.dDown
	return d.next
}

func (l *ledger) check(t *testing.T) {
	t.Helper()
	up, down := 0, 0
	for _, d := range l.votes {
		if d == Up {
			up++
		} else {
			down++
		}
	}
	if l.up != up || l.down != down {
		t.Fatalf("counters (%d,%d) drifted from vote map (%d,%d)", l.up, l.down, up, down)
	}
	if l.up < 0 || l.down < 0 {
		t.Fatalf("negative counter: (%d,%d)", l.up, l.down)
	}
}

func TestToggleSequenceSingleVoter(t *testing.T) {
	l := newLedger()
	seq := []Direction{Up, Up, Down, Down, Up}
	// up: cast (1,0); up: toggle off (0,0); down: cast (0,1);
	// down: toggle off (0,0); up: cast (1,0).
	wantUp := []int{1, 0, 0, 0, 1}
	wantDown := []int{0, 0, 1, 0, 0}
	for i, dir := range seq {
		l.cast("u1", dir)
		l.check(t)
		if l.up != wantUp[i] || l.down != wantDown[i] {
			t.Fatalf("after step %d: counters (%d,%d), want (%d,%d)", i, l.up, l.down, wantUp[i], wantDown[i])
		}
	}
}

func TestSwitchScenario(t *testing.T) {
	l := newLedger()
	if next := l.cast("u1", Up); next != Up {
		t.Fatalf("first vote: got %q", next)
	}
	if l.up != 1 || l.down != 0 {
		t.Fatalf("after up: (%d,%d), want (1,0)", l.up, l.down)
	}
	if next := l.cast("u1", Down); next != Down {
		t.Fatalf("switch: got %q", next)
	}
	if l.up != 0 || l.down != 1 {
		t.Fatalf("after switch: (%d,%d), want (0,1)", l.up, l.down)
	}
	if next := l.cast("u1", Down); next != None {
		t.Fatalf("toggle off: got %q", next)
	}
	if l.up != 0 || l.down != 0 {
		t.Fatalf("after toggle off: (%d,%d), want (0,0)", l.up, l.down)
	}
	l.check(t)
}

func TestManyVotersInvariant(t *testing.T) {
	l := newLedger()
	voters := []string{"a", "b", "c", "d", "e", "f", "g"}
	dirs := []Direction{Up, Down, Up, Up, Down, Down, Up, Down, Up}
	for i := 0; i < 200; i++ {
		l.cast(voters[i%len(voters)], dirs[i%len(dirs)])
		l.check(t)
		if l.up+l.down > len(voters) {
			t.Fatalf("up+down = %d exceeds %d distinct voters", l.up+l.down, len(voters))
		}
	}
}

func TestIdempotentReplayIsToggle(t *testing.T) {
	l := newLedger()
	l.cast("u1", Up)
	l.cast("u1", Up)
	if l.up != 0 || l.down != 0 || len(l.votes) != 0 {
		t.Fatalf("replaying the same vote must net to zero, got (%d,%d) with %d entries", l.up, l.down, len(l.votes))
	}
}
