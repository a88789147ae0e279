package engine

// Intent is the player's input for one frame
type Intent struct {
	RotateLeft  bool
	RotateRight bool
	Forward     bool
	Backward    bool
	Fire        bool
}

// Rotation returns +1 for counter-clockwise, -1 for clockwise, 0 when
// neither or both rotate keys are held.
func (i Intent) Rotation() float64 {
	switch {
	case i.RotateLeft && !i.RotateRight:
		return 1
	case i.RotateRight && !i.RotateLeft:
		return -1
	default:
		return 0
	}
}

// Drive reports whether the tank should move and in which direction.
// Forward and backward together cancel out.
func (i Intent) Drive() (move, reverse bool) {
	if i.Forward == i.Backward {
		return false, false
	}
	return true, i.Backward
}
