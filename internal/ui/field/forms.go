package field

// WriteValue is the form model writing into the control
func (f *Field[V]) WriteValue(values []V) {
	f.SetValue(values)
}

// SetValue replaces the selection. Setting the slice that was set last is a
// no-op while no user pick has replaced it since.
func (f *Field[V]) SetValue(values []V) {
	if f.writtenCurrent && sameSlice(values, f.written) {
		return
	}
	f.written = values
	f.writtenCurrent = true
	f.coord.Selection.Reset(values)
	f.value = f.coord.Selection.GetSelected()
	f.coord.ReconcileRendered()
	f.stateChanged()
}

// Value returns a copy of the committed values
func (f *Field[V]) Value() []V {
	return append([]V{}, f.value...)
}

// RegisterOnChange sets the callback run whenever the user changes the value
func (f *Field[V]) RegisterOnChange(fn func([]V)) {
	if fn == nil {
		fn = func([]V) {}
	}
	f.onChange = fn
}

// RegisterOnTouched sets the callback run when the control is left
func (f *Field[V]) RegisterOnTouched(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	f.onTouched = fn
}

// SetDisabledState enables or disables the control. Disabling closes the panel.
func (f *Field[V]) SetDisabledState(disabled bool) {
	f.disabled = disabled
	if disabled {
		f.ClosePanel()
	}
	f.stateChanged()
}

// Disabled reports whether the control is disabled
func (f *Field[V]) Disabled() bool { return f.disabled }

// Touched reports whether the user has left the control at least once
func (f *Field[V]) Touched() bool { return f.touched }

// Focused is true while the control has focus or its panel is open
func (f *Field[V]) Focused() bool {
	return f.focused || f.panelOpen
}

// Empty reports whether nothing is selected
func (f *Field[V]) Empty() bool {
	return len(f.value) == 0
}

// ShouldLabelFloat reports whether the container label moves out of the way
func (f *Field[V]) ShouldLabelFloat() bool {
	return f.Focused() || !f.Empty()
}

// HidePlaceholder reports whether the placeholder should be hidden
func (f *Field[V]) HidePlaceholder() bool {
	return !f.Focused() || !f.Empty()
}

// Placeholder returns the placeholder text
func (f *Field[V]) Placeholder() string { return f.cfg.Placeholder }

// SetPlaceholder sets the placeholder text
func (f *Field[V]) SetPlaceholder(p string) {
	f.cfg.Placeholder = p
	f.stateChanged()
}

// Required reports whether a value is required
func (f *Field[V]) Required() bool { return f.cfg.Required }

// SetRequired sets whether a value is required
func (f *Field[V]) SetRequired(req bool) {
	f.cfg.Required = req
	f.stateChanged()
}

// SetValidator sets an extra validation run on the committed values
func (f *Field[V]) SetValidator(fn func([]V) error) {
	f.validator = fn
	f.stateChanged()
}

// ValidationError returns why the current value is invalid, or nil
func (f *Field[V]) ValidationError() error {
	if f.cfg.Required && f.Empty() {
		return ErrRequired
	}
	if f.validator != nil {
		return f.validator(f.Value())
	}
	return nil
}

// ErrorState is true once a touched control holds an invalid value
func (f *Field[V]) ErrorState() bool {
	return f.touched && f.ValidationError() != nil
}

func sameSlice[V any](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
