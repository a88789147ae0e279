package engo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/engine"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// Sound files looked up in the assets directory
var cueFiles = map[engine.Cue]string{
	engine.CueShot:      "shot.wav",
	engine.CueHit:       "tank_hit.wav",
	engine.CueExplosion: "tank_exploded.wav",
}

const engineFile = "engine.wav"

// audioPlayer is the part of *common.Player the sound board uses
type audioPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
}

// SoundBoard implements engine.SoundPlayer with engo audio players. Cues
// without a loaded file are logged at debug level instead.
type SoundBoard struct {
	players map[engine.Cue]audioPlayer
	engine  audioPlayer
	running bool
	logger  *logging.Logger
	ctx     context.Context
}

// NewSoundBoard creates a silent sound board
func NewSoundBoard(logger *logging.Logger) *SoundBoard {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SoundBoard{
		players: make(map[engine.Cue]audioPlayer),
		logger:  logger,
		ctx:     context.Background(),
	}
}

// Load loads the sound files found in dir. Missing files are skipped; the
// returned count is the number of players created.
func (sb *SoundBoard) Load(dir string) int {
	if dir == "" {
		return 0
	}

	loaded := 0
	for cue, file := range cueFiles {
		if p := sb.loadPlayer(dir, file); p != nil {
			sb.players[cue] = p
			loaded++
		}
	}
	if p := sb.loadPlayer(dir, engineFile); p != nil {
		sb.engine = p
		loaded++
	}

	sb.logger.Info(sb.ctx, "sounds loaded", "count", loaded, "dir", dir)
	return loaded
}

func (sb *SoundBoard) loadPlayer(dir, file string) audioPlayer {
	if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
		sb.logger.Debug(sb.ctx, "sound file missing", "file", file)
		return nil
	}
	if err := engo.Files.Load(file); err != nil {
		sb.logger.Warn(sb.ctx, "failed to load sound file", "file", file, "error", err)
		return nil
	}
	p, err := common.LoadedPlayer(file)
	if err != nil {
		sb.logger.Warn(sb.ctx, "failed to create audio player", "file", file, "error", err)
		return nil
	}
	return p
}

// Play implements engine.SoundPlayer
func (sb *SoundBoard) Play(cue engine.Cue) {
	p, ok := sb.players[cue]
	if !ok {
		sb.logger.Debug(sb.ctx, "sound cue", "cue", cue.String())
		return
	}
	if err := p.Rewind(); err != nil {
		sb.logger.Warn(sb.ctx, "failed to rewind sound", "cue", cue.String(), "error", err)
	}
	p.Play()
}

// SetEngineRunning loops the engine sound while the player's tank moves
func (sb *SoundBoard) SetEngineRunning(running bool) {
	defer func() { sb.running = running }()
	if sb.engine == nil {
		return
	}

	switch {
	case running && !sb.engine.IsPlaying():
		if err := sb.engine.Rewind(); err != nil {
			sb.logger.Warn(sb.ctx, "failed to rewind engine sound", "error", err)
		}
		sb.engine.Play()
	case !running && sb.running:
		sb.engine.Pause()
	}
}

// EngineRunning reports whether the engine sound is wanted
func (sb *SoundBoard) EngineRunning() bool {
	return sb.running
}

var _ engine.SoundPlayer = (*SoundBoard)(nil)
