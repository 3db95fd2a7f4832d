/*
Package sheetkit manipulates the grid-based sprite sheets used by 2D
game asset pipelines.

A sheet is a single image subdivided into a uniform grid of frames,
with each row (or column) holding one animation. The package slices
sheets into frames, edits them (delete, cleanup, compact), combines
per-animation sheets into a single strip sheet, and reads and writes
the .layout sidecar files that describe the result. The subpackages
hold the building blocks: grid for the frame model, layout for the
sidecar codec, detect for grid guessing, transform for frame scaling
and rotation, and analyze for sheet inspection.
*/
package sheetkit
