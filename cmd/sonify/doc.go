// Command sonify converts images (PNG/JPEG/GIF/BMP) to audio files (WAV/FLAC).
//
// Every image column becomes a short time slice and every row a sine tone,
// the top row playing the highest frequency. The brighter the pixel, the
// louder the tone. The result is peak normalized.
//
// Usage:
//
//	sonify [flags] <image_file>
//
// The output file is named <image_file>.wav unless -o is given; an -o name
// ending in .flac writes FLAC. Settings come from -config (YAML) and are
// overridden by flags. -spectrogram and -waveform write PNG plots of the
// result, -play plays it and waits until it ends.
package main
