// Package sonify turns images into sound.
//
// Every image column becomes a short time slice and every row a fixed
// sinusoid, so brightness at (row, column) is the loudness of that row's
// tone during that column. The subpackages provide:
//   - grid: loading an image into a normalized sample grid
//   - synth: additive synthesis of the grid into a mono PCM buffer
//   - spectrogram: short-time power spectra of a buffer, in dB
//   - pcm: the PCM buffer type, its time series, and audio file I/O
//   - plot: PNG renderings of spectrograms and waveforms
//   - playback: non-blocking, cancellable playback on a sound device
//   - session: an explicit session context with debounced re-synthesis
//
// This package holds the error taxonomy shared by all of them.
package sonify
