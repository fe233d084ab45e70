// Package plumber is the engine layer of a small 2D platformer built on
// [Ebitengine].
//
// Plumber provides texture regions and atlases, frame animations, bitmap and
// TTF fonts, a depth-sorted [SpriteBatch], keyboard snapshots and a
// fixed-step game loop. The sprite wrappers live in plumber/sprites and the
// keyboard controller in plumber/controller.
//
// # Quick start
//
// Implement [Scene] and hand it to [Run]:
//
//	type level struct{ hero *sprites.Sprite }
//
//	func (l *level) Update(gt plumber.GameTime) error { l.hero.Update(gt); return nil }
//	func (l *level) Draw(b *plumber.SpriteBatch)      { l.hero.Draw(b) }
//
//	plumber.Run(&level{hero: hero}, plumber.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, pass [NewGame] to [ebiten.RunGame] yourself.
//
// # Drawing
//
// Everything visible goes through a [SpriteBatch]. Draws are queued between
// Begin and End, sorted by layer depth according to the [SortMode], and
// submitted on End. Colors are straight alpha; premultiplication happens at
// submission.
//
//	sheet := plumber.NewAtlas(page)
//	idle, _ := sheet.Add("hero_idle", 0, 0, 0, 16, 16)
//	s := plumber.NewSprite(idle)
//	s.CenterOrigin()
//	s.Draw(batch, plumber.Vec2{X: 100, Y: 50})
//
// # Input
//
// [KeyboardInfo] keeps the current and previous keyboard snapshot so
// transitions can be queried. It reads from a [KeySource]: the real keyboard
// by default, or a [KeyInjector] for scripted runs. A [TestRunner] plays a
// JSON script of key taps, waits and screenshots against an injector.
//
// # Logging
//
// The package logs through zap. The default logger discards everything;
// install one with [SetLogger], usually built with [NewLogger].
//
// [Ebitengine]: https://ebitengine.org
package plumber
