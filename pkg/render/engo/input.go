// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tanks/pkg/engine"
)

// Button names registered with engo.Input
const (
	ButtonRotateLeft  = "rotateLeft"
	ButtonRotateRight = "rotateRight"
	ButtonForward     = "forward"
	ButtonBackward    = "backward"
	ButtonFire        = "fire"
	ButtonPause       = "pause"
)

// inputPriority reads the keyboard before anything else runs
const inputPriority = 30

// buttonState reports the state of a named button
type buttonState func(name string) bool

func engoDown(name string) bool {
	return engo.Input.Button(name).Down()
}

func engoJustPressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

// InputSystem turns the keyboard into the player's intent for this frame
type InputSystem struct {
	down        buttonState
	justPressed buttonState

	intent       engine.Intent
	pauseToggled bool
}

// NewInputSystem creates a new input system reading engo buttons
func NewInputSystem() *InputSystem {
	return &InputSystem{
		down:        engoDown,
		justPressed: engoJustPressed,
	}
}

// Priority implements ecs.Prioritizer
func (is *InputSystem) Priority() int {
	return inputPriority
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the buttons
func (is *InputSystem) Update(dt float32) {
	is.intent = intentFrom(is.down)
	is.pauseToggled = is.justPressed(ButtonPause)
}

// Intent returns the intent sampled on the last update
func (is *InputSystem) Intent() engine.Intent {
	return is.intent
}

// PauseToggled reports whether pause was pressed on the last update
func (is *InputSystem) PauseToggled() bool {
	return is.pauseToggled
}

func intentFrom(down buttonState) engine.Intent {
	return engine.Intent{
		RotateLeft:  down(ButtonRotateLeft),
		RotateRight: down(ButtonRotateRight),
		Forward:     down(ButtonForward),
		Backward:    down(ButtonBackward),
		Fire:        down(ButtonFire),
	}
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonRotateLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRotateRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonForward, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonBackward, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonPause, engo.KeyP, engo.KeyEscape)
}
