package notify

// Notifier owns a change flag and the callbacks that fire when the flag is
// set. The zero value is ready to use.
type Notifier struct {
	callbacks List[func()]
	changed   bool
}

// AddCallback registers fn and returns its ID.
func (n *Notifier) AddCallback(fn func()) CallbackID {
	return n.callbacks.Add(fn)
}

// RemoveCallback unregisters a callback. It returns false if the ID is not
// registered.
func (n *Notifier) RemoveCallback(id CallbackID) bool {
	return n.callbacks.Remove(id)
}

// NumCallbacks returns the number of registered callbacks.
func (n *Notifier) NumCallbacks() int {
	return n.callbacks.Len()
}

// HasChanged returns the change flag.
func (n *Notifier) HasChanged() bool {
	return n.changed
}

// SetChanged updates the change flag. Setting it to true invokes every
// callback synchronously in registration order before returning.
func (n *Notifier) SetChanged(changed bool) {
	n.changed = changed
	if !changed {
		return
	}

	n.callbacks.Each(func(_ CallbackID, fn func()) {
		fn()
	})
}
