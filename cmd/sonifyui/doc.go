// Command sonifyui is an interactive terminal front end for sonify.
//
// It loads an image, renders it with the configured settings and lets the
// five sound settings be adjusted with the arrow keys. Changes are
// debounced, so holding a key renders only once the value settles.
//
// Usage:
//
//	sonifyui [flags] <image_file>
//
// Keys: ↑/↓ select a setting, ←/→ adjust it, p play, s stop, w save to
// <image_file>.wav (or -o), v toggle between spectrogram and waveform in
// the -plot file, r render again, q quit.
//
// The terminal belongs to the interface, so log output only goes to the
// log file named in the configuration.
package main
