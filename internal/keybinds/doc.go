/*
Package keybinds maps raw key events to editor actions.

Bindings live in a registry keyed by context. Matching checks the
active context first and falls back to the global context, which gives
the two-tier behavior the editor needs:

  - Global chords (ctrl+z, ctrl+y, ctrl+s, ctrl+p, esc) are
    document-level intents and fire everywhere, including while a text
    input has focus.
  - Canvas chords (delete, backspace, ctrl+d, element navigation) are
    registered only in the canvas context, so they can never fire while
    the user is typing.

Bare keys are never bound globally: a chord without the ctrl modifier
cannot be mistaken for typing.

The Dispatcher wraps the registry with a context accessor that is read
on every event, so a handler registered once keeps seeing the current
focus state instead of the state captured at registration time.
*/
package keybinds
