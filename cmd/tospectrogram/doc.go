// Command tospectrogram converts audio files (WAV/FLAC/MP3/OGG) to spectrogram images (PNG).
//
// The spectrogram is a one-sided power spectral density in dB over Hann
// windowed frames with 50% overlap, drawn with time to the right and
// frequency rising upwards.
//
// Usage:
//
//	tospectrogram [flags] <audio_file>
//
// The output PNG file will be named <audio_file>.png
//
// -half additionally dumps the dB grid as half precision floats to
// <audio_file>.f16, -peak prints the dominant frequency.
package main
