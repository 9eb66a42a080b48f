// Package playback plays PCM buffers on an audio device without blocking.
//
// A Sink starts playback and returns a Handle immediately; the Handle stops
// it, waits for it, or reports completion on a channel. Two sinks are
// provided: Speaker over beep's speaker and Malgo over miniaudio.
// Device failures match sonify.ErrDeviceUnavailable and are never retried.
package playback
