package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// ContextGlobal bindings fire everywhere, including while a text
	// input has focus. Only document-level intents that cannot be
	// mistaken for typing belong here.
	ContextGlobal Context = "global"

	// ContextCanvas bindings fire only while the canvas has focus.
	// Keys that overlap with typing (delete, duplicate, moves) live
	// here so they never fire inside a text input.
	ContextCanvas Context = "canvas"

	// ContextTextInput is active while an element is being edited or a
	// form field has focus
	ContextTextInput Context = "text_input"

	// ContextPicker is active in the template/file picker
	ContextPicker Context = "picker"
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force" // ctrl+c
	ActionUndo      Action = "undo"
	ActionRedo      Action = "redo"
	ActionSaveFile  Action = "save_file"  // serialize document to a JSON artifact
	ActionExportPDF Action = "export_pdf" // remote PDF generation
	ActionEscape    Action = "escape"     // exit edit mode / clear selection

	// Canvas actions
	ActionDeleteElement    Action = "delete_element"
	ActionDuplicateElement Action = "duplicate_element"
	ActionMoveElementUp    Action = "move_element_up"
	ActionMoveElementDown  Action = "move_element_down"
	ActionSelectNext       Action = "select_next"
	ActionSelectPrev       Action = "select_prev"
	ActionEditElement      Action = "edit_element"
	ActionAddElement       Action = "add_element"
	ActionAddPage          Action = "add_page"
	ActionDeletePage       Action = "delete_page"
	ActionNextPage         Action = "next_page"
	ActionPrevPage         Action = "prev_page"
	ActionZoomIn           Action = "zoom_in"
	ActionZoomOut          Action = "zoom_out"
	ActionYankElement      Action = "yank_element"
	ActionOpenTemplates    Action = "open_templates"
	ActionOpenFile         Action = "open_file"
	ActionEditMetadata     Action = "edit_metadata"
	ActionHelp             Action = "help"
	ActionQuit             Action = "quit"

	// Text input actions. Cancel is the global escape chord.
	ActionTextSubmit Action = "text_submit"

	// Picker actions. Cancel is the global escape chord.
	ActionPickerUp      Action = "picker_up"
	ActionPickerDown    Action = "picker_down"
	ActionPickerConfirm Action = "picker_confirm"
)
