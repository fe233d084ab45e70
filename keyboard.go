package plumber

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardState is a snapshot of which keys were held at one instant.
type KeyboardState struct {
	pressed [ebiten.KeyMax + 1]bool
}

// IsKeyDown reports whether key was held in the snapshot.
func (s *KeyboardState) IsKeyDown(key ebiten.Key) bool {
	if key < 0 || key > ebiten.KeyMax {
		return false
	}
	return s.pressed[key]
}

// IsKeyUp reports whether key was not held in the snapshot.
func (s *KeyboardState) IsKeyUp(key ebiten.Key) bool {
	return !s.IsKeyDown(key)
}

// PressedKeys appends the held keys to dst in key order.
func (s *KeyboardState) PressedKeys(dst []ebiten.Key) []ebiten.Key {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if s.pressed[k] {
			dst = append(dst, k)
		}
	}
	return dst
}

func (s *KeyboardState) set(keys []ebiten.Key) {
	s.pressed = [ebiten.KeyMax + 1]bool{}
	for _, k := range keys {
		if k >= 0 && k <= ebiten.KeyMax {
			s.pressed[k] = true
		}
	}
}

// KeySource reports the keys currently held.
type KeySource interface {
	AppendPressedKeys(dst []ebiten.Key) []ebiten.Key
}

// liveKeys reads the real keyboard through Ebitengine.
type liveKeys struct{}

func (liveKeys) AppendPressedKeys(dst []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(dst)
}

// LiveKeys returns the KeySource backed by the real keyboard.
func LiveKeys() KeySource {
	return liveKeys{}
}

// KeyboardInfo tracks the current and previous keyboard snapshots so that
// per-frame transitions (just pressed, just released) can be queried.
type KeyboardInfo struct {
	Previous KeyboardState
	Current  KeyboardState

	source KeySource
	buf    []ebiten.Key
}

// NewKeyboardInfo returns keyboard info reading from source, taking an
// initial snapshot so the first Update does not report every held key as
// just pressed. A nil source reads the real keyboard.
func NewKeyboardInfo(source KeySource) *KeyboardInfo {
	if source == nil {
		source = LiveKeys()
	}
	k := &KeyboardInfo{source: source, buf: make([]ebiten.Key, 0, 16)}
	k.snapshot(&k.Current)
	k.Previous = k.Current
	return k
}

// Update moves the current snapshot into Previous and takes a new one.
// Call once per frame.
func (k *KeyboardInfo) Update() {
	k.Previous = k.Current
	k.snapshot(&k.Current)
}

func (k *KeyboardInfo) snapshot(dst *KeyboardState) {
	k.buf = k.source.AppendPressedKeys(k.buf[:0])
	dst.set(k.buf)
}

// IsKeyDown reports whether key is currently held.
func (k *KeyboardInfo) IsKeyDown(key ebiten.Key) bool {
	return k.Current.IsKeyDown(key)
}

// IsKeyUp reports whether key is currently not held.
func (k *KeyboardInfo) IsKeyUp(key ebiten.Key) bool {
	return k.Current.IsKeyUp(key)
}

// WasKeyJustPressed reports whether key went down between the previous and
// the current snapshot.
func (k *KeyboardInfo) WasKeyJustPressed(key ebiten.Key) bool {
	return k.Current.IsKeyDown(key) && k.Previous.IsKeyUp(key)
}

// WasKeyJustReleased reports whether key went up between the previous and
// the current snapshot.
func (k *KeyboardInfo) WasKeyJustReleased(key ebiten.Key) bool {
	return k.Current.IsKeyUp(key) && k.Previous.IsKeyDown(key)
}

// ParseKey maps a key name such as "W", "space" or "ArrowUp" to its
// ebiten.Key, ignoring case. Single digits are read as the digit row keys.
func ParseKey(name string) (ebiten.Key, error) {
	n := strings.TrimSpace(name)
	if len(n) == 1 && n[0] >= '0' && n[0] <= '9' {
		n = "Digit" + n
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), n) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("plumber: unknown key %q", name)
}
