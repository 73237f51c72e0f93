// Package input reports the state of the badge buttons.
package input

import (
	"fmt"
	"sync/atomic"
)

// Button identifies a hardware button.
type Button uint8

const (
	Home Button = iota
	Menu
	Start
	Select
	A
	B
	Up
	Down
	Left
	Right
	numButtons
)

var buttonNames = [numButtons]string{"home", "menu", "start", "select", "a", "b", "up", "down", "left", "right"}

func (b Button) String() string {
	if b >= numButtons {
		return fmt.Sprintf("button(%d)", uint8(b))
	}
	return buttonNames[b]
}

// ParseButton returns the Button with the given name.
func ParseButton(name string) (Button, error) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Buttons reports whether a button is currently pressed. Polled, non-blocking.
type Buttons interface {
	IsPressed(b Button) bool
}

// Latch is a Buttons implementation fed by event sources (window, signals).
// A press stays visible until Release. Safe for concurrent use.
type Latch struct {
	pressed [numButtons]atomic.Bool
}

var _ Buttons = (*Latch)(nil)

// Press marks b as pressed.
func (l *Latch) Press(b Button) {
	if b < numButtons {
		l.pressed[b].Store(true)
	}
}

// Release marks b as released.
func (l *Latch) Release(b Button) {
	if b < numButtons {
		l.pressed[b].Store(false)
	}
}

// IsPressed reports whether b is pressed.
func (l *Latch) IsPressed(b Button) bool {
	if b >= numButtons {
		return false
	}
	return l.pressed[b].Load()
}
