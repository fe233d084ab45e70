package controller

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/plumber"
	"github.com/phanxgames/plumber/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		in   string
		want Trigger
	}{
		{"", TriggerPressed},
		{"pressed", TriggerPressed},
		{"held", TriggerHeld},
		{"released", TriggerReleased},
	}
	for _, tt := range tests {
		got, err := ParseTrigger(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseTrigger("twice")
	assert.Error(t, err)
}

func TestTriggerString(t *testing.T) {
	for _, tr := range []Trigger{TriggerPressed, TriggerHeld, TriggerReleased} {
		got, err := ParseTrigger(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, got)
	}
	assert.Equal(t, "Trigger(7)", Trigger(7).String())
}

func TestBindingFired(t *testing.T) {
	in := plumber.NewKeyInjector()
	k := NewKeyboard(in)
	pressed := Binding{Key: ebiten.KeySpace, Action: Jump, Trigger: TriggerPressed}
	held := Binding{Key: ebiten.KeySpace, Action: Jump, Trigger: TriggerHeld}
	released := Binding{Key: ebiten.KeySpace, Action: Jump, Trigger: TriggerReleased}

	type frame struct {
		down                    bool
		pressed, held, released bool
	}
	frames := []frame{
		{down: false},
		{down: true, pressed: true, held: true},
		{down: true, held: true},
		{down: false, released: true},
		{down: false},
	}
	for i, f := range frames {
		if f.down {
			in.Press(ebiten.KeySpace)
		} else {
			in.Release(ebiten.KeySpace)
		}
		k.Update(plumber.GameTime{})
		assert.Equal(t, f.pressed, pressed.Fired(k), "frame %d pressed", i)
		assert.Equal(t, f.held, held.Fired(k), "frame %d held", i)
		assert.Equal(t, f.released, released.Fired(k), "frame %d released", i)
	}
}

func TestDefaultBindingsMatchConfigDefaults(t *testing.T) {
	got, err := BindingsFromConfig(config.Default().Bindings)
	require.NoError(t, err)
	assert.Equal(t, DefaultBindings(), got)
}

func TestBindingsFromConfig(t *testing.T) {
	got, err := BindingsFromConfig([]config.Binding{
		{Key: "ArrowLeft", Action: "MoveLeft", Trigger: "held"},
		{Key: "escape", Action: "Quit"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Binding{
		{Key: ebiten.KeyArrowLeft, Action: MoveLeft, Trigger: TriggerHeld},
		{Key: ebiten.KeyEscape, Action: Quit, Trigger: TriggerPressed},
	}, got)
}

func TestBindingsFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   config.Binding
	}{
		{"bad key", config.Binding{Key: "Banana", Action: "Jump"}},
		{"bad trigger", config.Binding{Key: "Space", Action: "Jump", Trigger: "twice"}},
		{"empty action", config.Binding{Key: "Space"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindingsFromConfig([]config.Binding{tt.in})
			assert.Error(t, err)
		})
	}
}
