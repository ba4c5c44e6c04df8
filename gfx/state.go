package gfx

// Preserve records the current state of caps and returns a function that
// puts each one back. Use it with defer around code that flips toggles.
func Preserve(dev Device, caps ...Capability) (restore func()) {
	saved := make([]bool, len(caps))
	for i, c := range caps {
		saved[i] = dev.IsEnabled(c)
	}
	return func() {
		for i, c := range caps {
			if saved[i] {
				dev.Enable(c)
			} else {
				dev.Disable(c)
			}
		}
	}
}
