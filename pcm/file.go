package pcm

import "io"
import "os"
import "path/filepath"
import "strings"

import "github.com/neurlang/sonify"

// Load reads a mono buffer from a .wav, .flac, .mp3 or .ogg file.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &sonify.LoadError{Source: path, Err: err}
	}
	defer f.Close()

	b, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, &sonify.LoadError{Source: path, Err: err}
	}
	return b, nil
}

// Decode reads a mono buffer from r, whose encoding is named by ext (".wav", "flac", ...).
func Decode(r io.Reader, ext string) (*Buffer, error) {
	var b *Buffer
	var err error
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "wav", "wave":
		b, err = loadwav(r)
	case "flac":
		b, err = loadflac(r)
	case "mp3":
		b, err = loadmp3(r)
	case "ogg", "oga":
		b, err = loadogg(r)
	default:
		return nil, errUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(b.Samples) == 0 {
		return nil, errNoSamples
	}
	if b.SampleRate <= 0 {
		return nil, errBadSampleRate
	}
	return b, nil
}

// Save writes b to path; ".flac" selects FLAC, anything else WAV at bits 16 or 24.
func Save(path string, b *Buffer, bits int) (err error) {
	if bits != 16 && bits != 24 {
		return errBadBitDepth
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch {
	case strings.EqualFold(filepath.Ext(path), ".flac"):
		return SaveFlac(f, b)
	case bits == 24:
		return SaveWav24(f, b)
	}
	return SaveWav(f, b)
}
