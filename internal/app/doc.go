// Package app contains the core application logic. It assembles the action
// registry, the layout, the navigator and the dispatch loop into a running
// instance, decoupled from any specific entrypoint like a CLI or TUI.
package app
