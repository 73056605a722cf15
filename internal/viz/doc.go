// Package viz renders sessions in the terminal.
//
//   - [Canvas]: braille grid with 2x4 sub-pixels per cell
//   - [Rasterize]: draws a frame onto a canvas
//   - [Model]: Bubble Tea program that drives a session and forwards the
//     mouse to it
//
// # Key Bindings
//
//	S     - Start a new population
//	X     - Stop
//	+/-   - Edge distance up/down by 10
//	Click - Toggle the mouse disk
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// The program needs mouse motion reporting:
//
//	tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
package viz
