// Package spectrogram computes short-time power spectrograms of PCM buffers.
//
// Frames of Window samples overlap by Overlap (half a window by default), are
// Hann-windowed and transformed with an STFT. Power is the one-sided power
// spectral density, reported in decibels as 10·log10(P + 1e-10). Frequencies
// run from 0 to the Nyquist frequency and times are frame centres.
//
// A spectrogram is derived data: it is computed fresh on every call and never
// updated in place.
package spectrogram
