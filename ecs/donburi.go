package ecs

import (
	"github.com/phanxgames/plumber"
	"github.com/phanxgames/plumber/controller"
	"github.com/phanxgames/plumber/sprites"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SpriteData is the component stored on sprite entities.
type SpriteData struct {
	Name    string
	Sprite  *sprites.Sprite
	Visible bool // hidden sprites are neither updated nor drawn
}

// SpriteComponent is the Donburi component type for sprites.
var SpriteComponent = donburi.NewComponentType[SpriteData]()

// ActionEventType is the Donburi event type for fired controller actions.
// Subscribe to it in your systems and call ProcessEvents once per frame.
var ActionEventType = events.NewEventType[controller.ActionEvent]()

var spriteQuery = donburi.NewQuery(filter.Contains(SpriteComponent))

// AddSprite creates a visible sprite entity.
func AddSprite(world donburi.World, name string, s *sprites.Sprite) donburi.Entity {
	e := world.Create(SpriteComponent)
	donburi.SetValue(world.Entry(e), SpriteComponent, SpriteData{Name: name, Sprite: s, Visible: true})
	return e
}

// FindSprite returns the component of the first sprite entity named name.
func FindSprite(world donburi.World, name string) (*SpriteData, bool) {
	var found *SpriteData
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if found != nil {
			return
		}
		if d := SpriteComponent.Get(entry); d.Name == name {
			found = d
		}
	})
	return found, found != nil
}

// ShowOnly makes the sprite named name the only visible one and returns it.
// When no sprite has that name every sprite is hidden.
func ShowOnly(world donburi.World, name string) *sprites.Sprite {
	var shown *sprites.Sprite
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		d := SpriteComponent.Get(entry)
		d.Visible = d.Name == name
		if d.Visible {
			shown = d.Sprite
		}
	})
	return shown
}

// UpdateSprites updates every visible sprite.
func UpdateSprites(world donburi.World, gt plumber.GameTime) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if d := SpriteComponent.Get(entry); d.Visible {
			d.Sprite.Update(gt)
		}
	})
}

// DrawSprites submits every visible sprite to batch. The batch sorts by
// layer depth, so entity order does not matter.
func DrawSprites(world donburi.World, batch *plumber.SpriteBatch) {
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if d := SpriteComponent.Get(entry); d.Visible {
			d.Sprite.Draw(batch)
		}
	})
}

type donburiSink struct {
	world donburi.World
}

// NewActionSink returns a controller.ActionSink publishing to
// ActionEventType. Events are queued until ActionEventType.ProcessEvents.
func NewActionSink(world donburi.World) controller.ActionSink {
	return &donburiSink{world: world}
}

// Emit queues ev on ActionEventType.
func (s *donburiSink) Emit(ev controller.ActionEvent) {
	ActionEventType.Publish(s.world, ev)
}
