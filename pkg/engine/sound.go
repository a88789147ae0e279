package engine

// Cue names a sound the battle wants played
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CueExplosion
)

// String returns the cue name, which audio adapters use as a lookup key
func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueHit:
		return "hit"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// SoundPlayer plays sound cues. Calls are fire and forget.
type SoundPlayer interface {
	Play(cue Cue)
}

// NopSounds discards every cue
type NopSounds struct{}

// Play implements SoundPlayer
func (NopSounds) Play(Cue) {}
