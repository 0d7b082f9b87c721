// Package analysis provides spectral tools for probe time series.
//
//   - [FFT]: radix-2 transform, zero-padding to the next power of two
//   - [PowerSpectrum]: magnitudes of the non-negative frequency bins
//   - [DominantFrequency]: strongest non-DC frequency of a sampled series
//
// # Example
//
//	probe := metrics.NewProbe(120, 60)
//	s.AddMetric(probe)
//	s.Run(ctx, sim.RunConfig{Steps: 512})
//	f := analysis.DominantFrequency(probe.Series(), dt)
//
// For an oscillating charge, f should sit near the source frequency once the
// wave front has passed the probe.
package analysis
