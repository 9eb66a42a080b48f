// Package pcm holds mono floating-point PCM buffers and their file formats.
//
// A Buffer is produced once by the synthesizer and is read-only afterwards.
// It can be projected to a time series for plotting, streamed to a speaker,
// written as 16-bit WAV, 24-bit WAV or FLAC, and loaded back from WAV, FLAC,
// MP3 or Ogg Vorbis files (multi-channel input is mixed down to mono).
package pcm
