/*
Package layout implements the .layout sidecar codec.

A sidecar is a small UTF-8 text file stored next to a sheet image, same
basename with a .layout extension. It carries the grid and animation
metadata that cannot be recovered from pixels alone: the strip
orientation, the target frame size, the grid dimensions and one entry
per animation band. Decoding is permissive so a hand-edited or partly
corrupt file still yields whatever metadata it can.
*/
package layout

import (
	"path/filepath"
	"strings"
)

// Extension is the sidecar file extension.
const Extension = ".layout"

// defaultGrid is used for grid dimensions that are absent or fail to
// parse.
const defaultGrid = 4

// Mode selects the strip orientation of a sheet.
type Mode string

const (
	// Horizontal lays out one animation per row, frames left to right.
	Horizontal Mode = "horizontal"
	// Vertical lays out one animation per column, frames top to bottom.
	Vertical Mode = "vertical"
)

// Valid reports whether m is a known orientation.
func (m Mode) Valid() bool {
	return m == Horizontal || m == Vertical
}

// Animation describes one named band within the flattened frame
// sequence of a sheet.
type Animation struct {
	Name       string
	StartFrame int
	FrameCount int
}

// EndFrame is the inclusive index of the band's last frame.
func (a Animation) EndFrame() int {
	return a.StartFrame + a.FrameCount - 1
}

// Config is the metadata stored in a sidecar. It implements
// encoding.TextMarshaler and encoding.TextUnmarshaler.
type Config struct {
	Mode       Mode
	TargetSize int
	GridCols   int
	GridRows   int
	Animations []Animation

	// Warnings collects the lines the decoder skipped or defaulted.
	// Populated by Decode, never serialized.
	Warnings []string
}

// SidecarPath returns the sidecar path for the image at imagePath,
// replacing its extension.
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + Extension
}
