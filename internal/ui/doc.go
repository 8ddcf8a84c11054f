// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI wraps the [workflow.Controller]: the controller decides which of
// the four screens is active (sign in, register, profile form, result) and
// the [Model] owns everything cosmetic around it — text inputs, focus
// handling, the busy spinner and contextual help.
//
// Network actions staged by the controller are wrapped into tea.Cmd values;
// their [workflow.Event] results flow back through Update and are folded in
// with Apply, so the TUI never touches the HTTP layer directly.
package ui
