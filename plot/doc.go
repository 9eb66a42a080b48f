// Package plot renders spectrograms and waveforms as PNG images.
//
// Spectrograms are drawn as heat maps with time on the horizontal axis,
// frequency rising upwards, and an inferno colour scale over the dB range.
// Waveforms are drawn as a min/max envelope of the time series per pixel
// column. Axis labels are set in Go Regular.
package plot
