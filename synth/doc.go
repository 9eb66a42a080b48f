// Package synth renders a normalized grid into sound by additive synthesis.
//
// Each grid row is assigned a fixed frequency spaced linearly between
// MinFrequency and MaxFrequency, with the top row at the highest pitch. Each
// column becomes DurationPerColumn seconds of audio in which every row plays
// a sine at its frequency, scaled by the row's sample. The concatenated
// columns are peak-normalized so the loudest sample is exactly ±1.
//
// Two modes are available:
//   - ModeSparse (default) skips rows whose sample does not exceed
//     AmplitudeThreshold, so faint pixels contribute nothing
//   - ModeDense sums every row through a gonum matrix-vector product,
//     without thresholding
package synth
