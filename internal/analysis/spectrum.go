package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a one-sided power spectrum of a sampled series.
type Spectrum struct {
	Freqs []float64 // cycles per time unit, from 0 up to Nyquist
	Power []float64 // squared magnitude per bin
}

// PowerSpectrum computes the one-sided power spectrum of samples taken dt
// apart. The mean is removed first so the DC bin does not swamp the
// oscillatory content. Fewer than two samples or a non-positive dt yields
// an empty spectrum.
func PowerSpectrum(samples []float64, dt float64) *Spectrum {
	n := len(samples)
	if n < 2 || dt <= 0 {
		return &Spectrum{}
	}

	mean := floats.Sum(samples) / float64(n)
	detrended := make([]float64, n)
	for i, v := range samples {
		detrended[i] = v - mean
	}

	coeffs := fft.FFTReal(detrended)

	half := n / 2
	spec := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		spec.Freqs[i] = float64(i) / (float64(n) * dt)
		mag := cmplx.Abs(coeffs[i])
		spec.Power[i] = mag * mag / float64(n)
	}
	return spec
}

// Dominant returns the frequency carrying the most power, skipping the DC
// bin. An empty or DC-only spectrum reports zero.
func (s *Spectrum) Dominant() (freq, power float64) {
	if len(s.Power) < 2 {
		return 0, 0
	}
	idx := floats.MaxIdx(s.Power[1:]) + 1
	return s.Freqs[idx], s.Power[idx]
}
