package controller

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/plumber"
	"go.uber.org/zap"
)

// Command is run when its action fires.
type Command interface {
	Execute()
}

// CommandFunc adapts a function to Command.
type CommandFunc func()

// Execute calls f.
func (f CommandFunc) Execute() { f() }

// ActionEvent describes one fired binding.
type ActionEvent struct {
	Action  Action
	Key     ebiten.Key
	Trigger Trigger
}

// ActionSink receives every fired ActionEvent, after the action's commands
// have run.
type ActionSink interface {
	Emit(ev ActionEvent)
}

// Dispatcher polls a KeyInput once per frame and runs the commands bound to
// the actions whose bindings fired.
type Dispatcher struct {
	input    KeyInput
	bindings []Binding
	handlers map[Action][]Command
	sink     ActionSink
}

// logger reads the package logger on every call so SetLogger takes effect
// for dispatchers that already exist.
func logger() *zap.Logger {
	return plumber.Logger().Named("controller")
}

// NewDispatcher returns a dispatcher over input. Bindings are evaluated in
// the order given.
func NewDispatcher(input KeyInput, bindings []Binding) *Dispatcher {
	return &Dispatcher{
		input:    input,
		bindings: bindings,
		handlers: make(map[Action][]Command),
	}
}

// Handle registers cmd for action. Commands for the same action run in
// registration order.
func (d *Dispatcher) Handle(action Action, cmd Command) {
	d.handlers[action] = append(d.handlers[action], cmd)
}

// HandleFunc registers f for action.
func (d *Dispatcher) HandleFunc(action Action, f func()) {
	d.Handle(action, CommandFunc(f))
}

// SetSink sets where fired actions are reported. nil disables reporting.
func (d *Dispatcher) SetSink(sink ActionSink) {
	d.sink = sink
}

// Input returns the polled device.
func (d *Dispatcher) Input() KeyInput {
	return d.input
}

// Bindings returns the bindings in evaluation order.
func (d *Dispatcher) Bindings() []Binding {
	return d.bindings
}

// Update refreshes the input and fires every binding whose trigger holds.
// It returns the number of bindings fired. A disconnected input fires
// nothing.
func (d *Dispatcher) Update(gt plumber.GameTime) int {
	d.input.Update(gt)
	if !d.input.IsConnected() {
		return 0
	}
	fired := 0
	for _, b := range d.bindings {
		if !b.Fired(d.input) {
			continue
		}
		fired++
		cmds := d.handlers[b.Action]
		if b.Trigger != TriggerHeld {
			logger().Debug("action", zap.String("action", string(b.Action)), zap.Stringer("key", b.Key), zap.Int("commands", len(cmds)))
		}
		for _, c := range cmds {
			c.Execute()
		}
		if d.sink != nil {
			d.sink.Emit(ActionEvent{Action: b.Action, Key: b.Key, Trigger: b.Trigger})
		}
	}
	return fired
}
