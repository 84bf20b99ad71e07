// Package tui is the Bubble Tea front end of the client.
//
// [RootModel] renders exactly the screen [gate.Route] allows: one page per
// gate screen, plus the home area with the sync page and the app-lock
// settings. Every gate operation ends with a gate result message after
// which the root model asks the controller for the screen again, so pages
// never decide on their own which gate is open.
package tui
