// Package viz renders charge scenes and field geometry for the terminal.
//
// Rendering happens in two stages: geometry builders turn sources into
// world-space primitives, and [Render] projects them through a [Camera]
// onto a braille [Canvas]:
//
//   - [Canvas]: braille pixel buffer, 2x4 dots per character cell
//   - [Camera]: rotating, zooming perspective projection
//   - [BuildSceneWireframe]: rings, spheres and point charges as edges
//   - [TraceFieldLines]: field lines marched outward from the sources
//   - [FieldMap]: ASCII intensity map of |E| over the z=0 slice
package viz
