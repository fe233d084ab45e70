// Package controller turns device input into game actions.
//
// A Keyboard wraps a pair of keyboard snapshots and answers the usual
// down/up/just-pressed/just-released queries. A Dispatcher maps key
// Bindings to Actions and runs the Commands registered for them.
package controller

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/plumber"
)

// Controller is an input device refreshed once per frame.
type Controller interface {
	Update(gt plumber.GameTime)
	IsConnected() bool
}

// KeyInput is a Controller with keys.
type KeyInput interface {
	Controller
	IsKeyDown(key ebiten.Key) bool
	IsKeyUp(key ebiten.Key) bool
	WasKeyJustPressed(key ebiten.Key) bool
	WasKeyJustReleased(key ebiten.Key) bool
}

// Keyboard is the keyboard controller. Every query is answered from the
// snapshots taken by the last two calls to Update.
type Keyboard struct {
	info *plumber.KeyboardInfo
}

var _ KeyInput = (*Keyboard)(nil)

// NewKeyboard returns a keyboard reading from source. A nil source reads
// the real keyboard through Ebitengine.
func NewKeyboard(source plumber.KeySource) *Keyboard {
	return &Keyboard{info: plumber.NewKeyboardInfo(source)}
}

// Update takes a new snapshot. Call it exactly once per frame.
func (k *Keyboard) Update(plumber.GameTime) {
	k.info.Update()
}

// IsConnected always reports true: a keyboard is assumed present.
func (k *Keyboard) IsConnected() bool {
	return true
}

// IsKeyDown reports whether key is held in the current snapshot.
func (k *Keyboard) IsKeyDown(key ebiten.Key) bool {
	return k.info.IsKeyDown(key)
}

// IsKeyUp reports whether key is not held in the current snapshot.
func (k *Keyboard) IsKeyUp(key ebiten.Key) bool {
	return k.info.IsKeyUp(key)
}

// WasKeyJustPressed reports whether key went down since the previous Update.
func (k *Keyboard) WasKeyJustPressed(key ebiten.Key) bool {
	return k.info.WasKeyJustPressed(key)
}

// WasKeyJustReleased reports whether key went up since the previous Update.
func (k *Keyboard) WasKeyJustReleased(key ebiten.Key) bool {
	return k.info.WasKeyJustReleased(key)
}

// Info returns the underlying snapshot pair.
func (k *Keyboard) Info() *plumber.KeyboardInfo {
	return k.info
}
