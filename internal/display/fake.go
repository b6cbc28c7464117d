package display

// FakeDisplay records shown lines for test assertions.
type FakeDisplay struct {
	// Line1 and Line2 hold the most recently shown lines.
	Line1, Line2 string

	// History records every ShowLines call as a [line1, line2] pair.
	History [][2]string

	Backlit bool
	Closed  bool
}

// NewFakeDisplay creates a FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{Backlit: true}
}

// ShowLines records the lines.
func (f *FakeDisplay) ShowLines(line1, line2 string) error {
	f.Line1, f.Line2 = line1, line2
	f.History = append(f.History, [2]string{line1, line2})
	return nil
}

// Backlight records the backlight state.
func (f *FakeDisplay) Backlight(on bool) error {
	f.Backlit = on
	return nil
}

// Close marks the display as closed.
func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}
