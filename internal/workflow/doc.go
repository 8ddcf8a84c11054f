// Package workflow implements the client's screen state machine.
//
// The [Controller] mediates between the session store, the recommendation
// service, and whatever front end drives it (the bubbletea TUI or the CLI).
// It follows the same staged-command shape as the TUI's Elm loop:
//
//  1. A user action calls SubmitCredentials or SubmitProfile, which either
//     rejects the action (busy, wrong screen, invalid input) or stages a
//     [Command] and flips the busy flag.
//  2. The Command runs off the event loop, makes at most two network calls,
//     and produces an [Event].
//  3. [Controller.Apply] folds the Event back into the state machine on the
//     event loop.
//
// This keeps every transition single-threaded and makes the full state
// machine testable without a terminal or a network.
package workflow
