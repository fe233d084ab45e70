package controller

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/plumber"
	"github.com/phanxgames/plumber/config"
)

// Action names something the player wants to do.
type Action string

const (
	MoveUp    Action = "MoveUp"
	MoveLeft  Action = "MoveLeft"
	MoveDown  Action = "MoveDown"
	MoveRight Action = "MoveRight"
	Jump      Action = "Jump"
	Quit      Action = "Quit"

	DisplaySingleFrameSprite           Action = "DisplaySingleFrameSprite"
	DisplayAnimatedSpriteFixedPosition Action = "DisplayAnimatedSpriteFixedPosition"
	DisplaySingleFrameSpriteMoveUpDown Action = "DisplaySingleFrameSpriteMoveUpDown"
	DisplayAnimatedSpriteMoveLeftRight Action = "DisplayAnimatedSpriteMoveLeftRight"
)

// Trigger selects which key state fires a binding.
type Trigger uint8

const (
	TriggerPressed  Trigger = iota // the frame the key goes down
	TriggerHeld                    // every frame the key is down
	TriggerReleased                // the frame the key goes up
)

// String returns the name accepted by ParseTrigger.
func (t Trigger) String() string {
	switch t {
	case TriggerPressed:
		return "pressed"
	case TriggerHeld:
		return "held"
	case TriggerReleased:
		return "released"
	}
	return fmt.Sprintf("Trigger(%d)", t)
}

// ParseTrigger maps "pressed", "held" or "released" to a Trigger. The empty
// string is TriggerPressed.
func ParseTrigger(s string) (Trigger, error) {
	switch s {
	case "", "pressed":
		return TriggerPressed, nil
	case "held":
		return TriggerHeld, nil
	case "released":
		return TriggerReleased, nil
	}
	return 0, fmt.Errorf("controller: unknown trigger %q", s)
}

// Binding fires Action when Key reaches the Trigger state.
type Binding struct {
	Key     ebiten.Key
	Action  Action
	Trigger Trigger
}

// Fired reports whether the binding's trigger condition holds on in.
func (b Binding) Fired(in KeyInput) bool {
	switch b.Trigger {
	case TriggerHeld:
		return in.IsKeyDown(b.Key)
	case TriggerReleased:
		return in.WasKeyJustReleased(b.Key)
	default:
		return in.WasKeyJustPressed(b.Key)
	}
}

// DefaultBindings returns WASD movement (held), Space to jump, 0 to quit
// and 1-4 to switch the displayed sprite.
func DefaultBindings() []Binding {
	return []Binding{
		{ebiten.KeyW, MoveUp, TriggerHeld},
		{ebiten.KeyA, MoveLeft, TriggerHeld},
		{ebiten.KeyS, MoveDown, TriggerHeld},
		{ebiten.KeyD, MoveRight, TriggerHeld},
		{ebiten.KeySpace, Jump, TriggerPressed},
		{ebiten.KeyDigit0, Quit, TriggerPressed},
		{ebiten.KeyDigit1, DisplaySingleFrameSprite, TriggerPressed},
		{ebiten.KeyDigit2, DisplayAnimatedSpriteFixedPosition, TriggerPressed},
		{ebiten.KeyDigit3, DisplaySingleFrameSpriteMoveUpDown, TriggerPressed},
		{ebiten.KeyDigit4, DisplayAnimatedSpriteMoveLeftRight, TriggerPressed},
	}
}

// BindingsFromConfig parses configured bindings in order.
func BindingsFromConfig(in []config.Binding) ([]Binding, error) {
	out := make([]Binding, 0, len(in))
	for i, c := range in {
		key, err := plumber.ParseKey(c.Key)
		if err != nil {
			return nil, fmt.Errorf("controller: binding %d: %w", i, err)
		}
		trig, err := ParseTrigger(c.Trigger)
		if err != nil {
			return nil, fmt.Errorf("controller: binding %d: %w", i, err)
		}
		if c.Action == "" {
			return nil, fmt.Errorf("controller: binding %d: empty action", i)
		}
		out = append(out, Binding{Key: key, Action: Action(c.Action), Trigger: trig})
	}
	return out, nil
}
