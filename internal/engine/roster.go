package engine

// SlotFlex is the wildcard slot; it accepts any position but, once filled,
// is never reassigned.
const SlotFlex = "FLEX"

// Roster holds one dedicated slot per position plus the flex slot. Slots maps
// slot name to the id of the player occupying it; absent means empty.
type Roster struct {
	Slots map[string]string `json:"slots"`
}

func NewRoster() Roster {
	return Roster{Slots: map[string]string{}}
}

// SlotCount is dedicated slots plus flex.
func SlotCount() int {
	return len(Positions) + 1
}

func (r Roster) Filled() int {
	return len(r.Slots)
}

func (r Roster) Full() bool {
	return r.Filled() >= SlotCount()
}

// CanAccept reports whether a player of the given position can legally join
// the roster: dedicated slot empty, or flex still open.
func (r Roster) CanAccept(p Position) bool {
	if _, taken := r.Slots[string(p)]; !taken {
		return true
	}
	_, flexTaken := r.Slots[SlotFlex]
	return !flexTaken
}

// EligiblePositions is the set of positions CanAccept holds for, in the fixed
// display order.
func (r Roster) EligiblePositions() []Position {
	var out []Position
	for _, p := range Positions {
		if r.CanAccept(p) {
			out = append(out, p)
		}
	}
	return out
}

// AssignSlot places a player id for the given position: dedicated slot first,
// flex second. Returns the slot name used, or ok=false when neither is open.
// Callers are expected to have checked CanAccept.
func (r Roster) AssignSlot(p Position, playerID string) (string, bool) {
	if _, taken := r.Slots[string(p)]; !taken {
		r.Slots[string(p)] = playerID
		return string(p), true
	}
	if _, taken := r.Slots[SlotFlex]; !taken {
		r.Slots[SlotFlex] = playerID
		return SlotFlex, true
	}
	return "", false
}
