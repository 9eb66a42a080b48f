// Package session keeps the state of an interactive sonification: the
// current image, the last rendered buffer and the running playback.
//
// The engine packages stay pure; a Session passes its state into them
// explicitly. A Scheduler debounces bursts of setting changes so that at
// most one render runs at a time and only the newest request is applied.
package session
