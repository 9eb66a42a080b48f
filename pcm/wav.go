package pcm

import "bytes"
import "io"

import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import goaudio "github.com/go-audio/audio"
import gowav "github.com/go-audio/wav"

// SaveWav writes b as a mono 16-bit PCM WAV.
func SaveWav(w io.WriteSeeker, b *Buffer) error {
	if b.SampleRate <= 0 {
		return errBadSampleRate
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(b.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	return wav.Encode(w, b.Streamer(), format)
}

// SaveWav24 writes b as a mono 24-bit PCM WAV.
func SaveWav24(w io.WriteSeeker, b *Buffer) error {
	if b.SampleRate <= 0 {
		return errBadSampleRate
	}
	const full = 1<<23 - 1
	data := make([]int, len(b.Samples))
	for i, s := range b.Samples {
		data[i] = int(clip(float64(s)) * full)
	}

	enc := gowav.NewEncoder(w, b.SampleRate, 24, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: b.SampleRate},
		Data:           data,
		SourceBitDepth: 24,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func loadwav(r io.Reader) (*Buffer, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		rs = bytes.NewReader(data)
	}

	d := gowav.NewDecoder(rs)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, err
		}
		return nil, errUnsupportedFormat
	}
	// 1 is integer PCM, 0xFFFE the extensible header carrying it.
	if d.WavAudioFormat != 1 && d.WavAudioFormat != 0xFFFE {
		return nil, errUnsupportedFormat
	}
	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	channels := int(d.NumChans)
	if channels < 1 {
		return nil, errUnsupportedFormat
	}
	// Signed samples span [-2^(n-1), 2^(n-1)); 8-bit data is unsigned.
	full := float64(int64(1) << (d.BitDepth - 1))
	offset := 0
	if d.BitDepth == 8 {
		offset = 128
	}

	frames := len(pcm.Data) / channels
	out := &Buffer{SampleRate: int(d.SampleRate), Samples: make([]float32, frames)}
	for i := range out.Samples {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(pcm.Data[i*channels+c]-offset) / full
		}
		out.Samples[i] = float32(sum / float64(channels))
	}
	return out, nil
}
