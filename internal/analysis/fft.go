package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// NextPow2 returns the smallest power of two >= n, and 1 for n <= 1.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FFT transforms data, zero-padding it to a power-of-two length so bins
// line up with NextPow2.
func FFT(data []float64) []complex128 {
	if len(data) == 0 {
		return []complex128{}
	}
	padded := make([]float64, NextPow2(len(data)))
	copy(padded, data)
	return fft.FFTReal(padded)
}

// PowerSpectrum returns |X[k]| for the first half of the (padded) transform.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}

	return ps
}

// DominantFrequency returns the frequency, in cycles per unit time, of the
// strongest non-DC bin of a series sampled every dt. The mean is removed
// first. It returns 0 when the series is too short or flat.
func DominantFrequency(series []float64, dt float64) float64 {
	if len(series) < 4 || dt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 {
		return 0
	}
	n := NextPow2(len(series))
	return float64(best) / (float64(n) * dt)
}
