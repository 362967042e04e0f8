// Package ui implements the terminal user interface for duview using
// Bubbletea. The navigator in package core draws onto a Canvas, which the
// App renders with lipgloss on every frame.
package ui
