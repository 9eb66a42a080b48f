package pcm

import "io"

import "github.com/mewkiz/flac"
import "github.com/mewkiz/flac/frame"
import "github.com/mewkiz/flac/meta"

const flacBlockSize = 4096

// SaveFlac writes b as a mono 16-bit FLAC stream with verbatim subframes.
func SaveFlac(w io.Writer, b *Buffer) error {
	if b.SampleRate <= 0 {
		return errBadSampleRate
	}
	block := flacBlockSize
	if n := len(b.Samples); n > 0 && n < block {
		block = n
	}
	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(block),
		BlockSizeMax:  uint16(block),
		SampleRate:    uint32(b.SampleRate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(len(b.Samples)),
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return err
	}

	pcm16 := b.Int16()
	for num, i := 0, 0; i < len(pcm16); num, i = num+1, i+block {
		end := min(i+block, len(pcm16))
		samples := make([]int32, end-i)
		for j, s := range pcm16[i:end] {
			samples[j] = int32(s)
		}
		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(len(samples)),
				SampleRate:        uint32(b.SampleRate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
				Num:               uint64(num),
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  len(samples),
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			enc.Close()
			return err
		}
	}
	return enc.Close()
}

func loadflac(r io.Reader) (*Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	out := &Buffer{SampleRate: int(stream.Info.SampleRate)}
	scale := float32(int64(1) << (stream.Info.BitsPerSample - 1))
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		channels := len(f.Subframes)
		for i := 0; i < int(f.BlockSize); i++ {
			var sum int64
			for _, sub := range f.Subframes {
				sum += int64(sub.Samples[i])
			}
			out.Samples = append(out.Samples, float32(sum)/float32(channels)/scale)
		}
	}
	return out, nil
}
