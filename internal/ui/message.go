package ui

// historySavedMsg reports the outcome of persisting a submission after a
// recommendation arrives. A failure is logged but never shown; the
// recommendation on screen is the thing the user asked for.
type historySavedMsg struct {
	err error
}
