package plumber

import "github.com/hajimehoshi/ebiten/v2"

// KeyInjector is a synthetic KeySource. Keys pressed on it stay held until
// released, exactly like a physical key; KeyboardInfo sees the change on its
// next Update. Use it for scripted input and tests.
type KeyInjector struct {
	held map[ebiten.Key]bool
}

// NewKeyInjector returns an injector with no keys held.
func NewKeyInjector() *KeyInjector {
	return &KeyInjector{held: make(map[ebiten.Key]bool)}
}

// Press holds key down.
func (in *KeyInjector) Press(key ebiten.Key) {
	in.held[key] = true
}

// Release lets key up. Releasing a key that is not held is a no-op.
func (in *KeyInjector) Release(key ebiten.Key) {
	delete(in.held, key)
}

// ReleaseAll lets every held key up.
func (in *KeyInjector) ReleaseAll() {
	clear(in.held)
}

// IsHeld reports whether key is currently held by the injector.
func (in *KeyInjector) IsHeld(key ebiten.Key) bool {
	return in.held[key]
}

// AppendPressedKeys implements KeySource. Keys are appended in key order.
func (in *KeyInjector) AppendPressedKeys(dst []ebiten.Key) []ebiten.Key {
	if len(in.held) == 0 {
		return dst
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if in.held[k] {
			dst = append(dst, k)
		}
	}
	return dst
}
