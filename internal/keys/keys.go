// Package keys models the process-wide key listener: the presentation layer
// dispatches key events tagged with the role of the focused element, and
// subscribers receive them until they cancel their subscription.
package keys

// Key identifies a key press.
type Key string

const (
	Enter  Key = "Enter"
	Escape Key = "Escape"
)

// Role is the accessibility role of the element that had focus.
type Role string

const (
	RoleNone     Role = ""
	RoleTextbox  Role = "textbox"
	RoleButton   Role = "button"
	RoleLink     Role = "link"
	RoleMenuItem Role = "menuitem"
	RoleOption   Role = "option"
	RoleListbox  Role = "listbox"
)

// HandlesEnter reports whether an element with this role activates itself on
// Enter. A global Enter handler must stand down for these so that one key
// press never triggers two actions.
func (r Role) HandlesEnter() bool {
	switch r {
	case RoleButton, RoleLink, RoleMenuItem, RoleOption:
		return true
	}
	return false
}

// Event is one key press.
type Event struct {
	Key   Key
	Focus Role
}

// Listener receives dispatched events.
type Listener func(Event)

// Dispatcher fans key events out to subscribers. It is used from a single
// event loop and is not safe for concurrent use.
type Dispatcher struct {
	listeners map[int]Listener
	order     []int
	next      int
}

// NewDispatcher returns a dispatcher with no subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns the function that removes it. The cancel
// function may be called any number of times.
func (d *Dispatcher) Subscribe(l Listener) (cancel func()) {
	if l == nil {
		return func() {}
	}
	id := d.next
	d.next++
	d.listeners[id] = l
	d.order = append(d.order, id)

	return func() {
		if _, ok := d.listeners[id]; !ok {
			return
		}
		delete(d.listeners, id)
		for i, v := range d.order {
			if v == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to every current subscriber in subscription order.
func (d *Dispatcher) Dispatch(ev Event) {
	ids := append([]int(nil), d.order...)
	for _, id := range ids {
		if l, ok := d.listeners[id]; ok {
			l(ev)
		}
	}
}

// Len returns the number of live subscriptions.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}
