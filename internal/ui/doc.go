// package ui implements the interactive terminal frontend.
//
// The TUI is a single bubbletea program whose screens (login form, library,
// watch history, video detail) are routed by the session guard. Protected
// screens never render while the session context is settling, and any request
// that comes back unauthorized drops the viewer on the login form with the
// interrupted screen remembered for after sign-in.
package ui
