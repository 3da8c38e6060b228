package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerCanvasBindings(r)
	registerTextInputBindings(r)
	registerPickerBindings(r)

	return r
}

// registerGlobalBindings sets up document-level chords that fire in
// every context, including while typing. The primary modifier in a
// terminal is ctrl; bare keys are never bound globally so plain typing
// can never trigger them.
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+z", ActionUndo)
	// Most terminals fold ctrl+shift+z into plain ctrl+z; the chord is
	// bound anyway for those that report shifted control keys.
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+y", "ctrl+shift+z"}, ActionRedo)
	r.Register(ContextGlobal, "ctrl+s", ActionSaveFile)
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+p", "ctrl+e"}, ActionExportPDF)
	r.Register(ContextGlobal, "esc", ActionEscape)
}

// registerCanvasBindings sets up bindings active only while the canvas
// has focus. Delete and duplicate deliberately live here and not in
// the global context: they must not fire while the user is typing.
func registerCanvasBindings(r *Registry) {
	r.RegisterMultiple(ContextCanvas, []string{"delete", "backspace"}, ActionDeleteElement)
	r.Register(ContextCanvas, "ctrl+d", ActionDuplicateElement)
	r.Register(ContextCanvas, "alt+up", ActionMoveElementUp)
	r.Register(ContextCanvas, "alt+down", ActionMoveElementDown)
	r.RegisterMultiple(ContextCanvas, []string{"down", "j"}, ActionSelectNext)
	r.RegisterMultiple(ContextCanvas, []string{"up", "k"}, ActionSelectPrev)
	r.Register(ContextCanvas, "enter", ActionEditElement)
	r.Register(ContextCanvas, "a", ActionAddElement)
	r.Register(ContextCanvas, "n", ActionAddPage)
	r.Register(ContextCanvas, "x", ActionDeletePage)
	r.RegisterMultiple(ContextCanvas, []string{"right", "l"}, ActionNextPage)
	r.RegisterMultiple(ContextCanvas, []string{"left", "h"}, ActionPrevPage)
	r.Register(ContextCanvas, "+", ActionZoomIn)
	r.Register(ContextCanvas, "-", ActionZoomOut)
	r.Register(ContextCanvas, "y", ActionYankElement)
	r.Register(ContextCanvas, "t", ActionOpenTemplates)
	r.Register(ContextCanvas, "o", ActionOpenFile)
	r.Register(ContextCanvas, "m", ActionEditMetadata)
	r.Register(ContextCanvas, "?", ActionHelp)
	r.Register(ContextCanvas, "q", ActionQuit)
}

// registerTextInputBindings sets up submit for edit mode. Cancel is
// the global escape chord; everything else falls through to the text
// component.
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "ctrl+enter", ActionTextSubmit)
}

// registerPickerBindings sets up the template/file picker navigation
func registerPickerBindings(r *Registry) {
	r.RegisterMultiple(ContextPicker, []string{"up", "ctrl+k"}, ActionPickerUp)
	r.RegisterMultiple(ContextPicker, []string{"down", "ctrl+j"}, ActionPickerDown)
	r.Register(ContextPicker, "enter", ActionPickerConfirm)
}
