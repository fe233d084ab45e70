// Package ecs registers plumber sprites and controller actions in a
// [Donburi] world.
//
// Each sprite lives on an entity carrying [SpriteComponent]. The
// [UpdateSprites] and [DrawSprites] systems drive every visible sprite, and
// [NewActionSink] publishes controller actions as [ActionEventType] events:
//
//	world := donburi.NewWorld()
//	ecs.AddSprite(world, "hero", hero)
//	dispatcher.SetSink(ecs.NewActionSink(world))
//	ecs.ActionEventType.Subscribe(world, onAction)
//
//	// per frame
//	ecs.ActionEventType.ProcessEvents(world)
//	ecs.UpdateSprites(world, gt)
//	ecs.DrawSprites(world, batch)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
