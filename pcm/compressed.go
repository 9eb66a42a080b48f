package pcm

import "encoding/binary"
import "io"

import "github.com/hajimehoshi/go-mp3"
import "github.com/jfreymuth/oggvorbis"

func loadmp3(r io.Reader) (*Buffer, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	// go-mp3 always yields 16-bit little-endian stereo
	frames := len(raw) / 4
	out := &Buffer{SampleRate: d.SampleRate(), Samples: make([]float32, frames)}
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(raw[4*i:]))
		r := int16(binary.LittleEndian.Uint16(raw[4*i+2:]))
		out.Samples[i] = (float32(l) + float32(r)) / 2 / 32768
	}
	return out, nil
}

func loadogg(r io.Reader) (*Buffer, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}
	channels := max(1, format.Channels)
	frames := len(data) / channels
	out := &Buffer{SampleRate: format.SampleRate, Samples: make([]float32, frames)}
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		out.Samples[i] = sum / float32(channels)
	}
	return out, nil
}
