// Package charge defines the source model for electrostatic scenes.
//
// A [Source] is a charged body with one of four closed geometries:
//
//   - [Point]: ideal point charge
//   - [Ring]: uniform ring of charge in the xy-plane (symmetry axis +z)
//   - [ConductingSphere]: all charge on the shell surface
//   - [NonConductingSphere]: charge spread uniformly through the volume
//
// The geometry set is a closed tagged union: every law in
// [github.com/tyl-create/elec-n/internal/field] switches exhaustively over
// [Geometry], so adding a geometry means extending those switches.
//
// Sources are plain value types. Copying a Source copies it entirely, and
// [Clone] snapshots a whole scene, so callers can hold frames without
// aliasing live simulation state.
package charge
