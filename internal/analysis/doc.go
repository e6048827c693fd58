// Package analysis provides offline analysis of recorded runs.
//
// The package works on the frame sequences the simulation runner records:
//
//   - [Track]: extract one coordinate of one source as a time series
//   - [PowerSpectrum]: one-sided power spectrum of a sampled series
//   - [PhasePortrait]: position/velocity phase-space trajectory
//
// # Oscillation Detection
//
// A bound source shows up as a sharp peak in its power spectrum:
//
//	track, _ := analysis.Track(res.Frames, 0, analysis.X)
//	spec := analysis.PowerSpectrum(track, cfg.Dt)
//	freq, _ := spec.Dominant()
package analysis
