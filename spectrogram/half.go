package spectrogram

import "encoding/binary"
import "errors"
import "fmt"
import "io"

import "github.com/x448/float16"

var halfMagic = [4]byte{'S', 'P', 'H', '1'}

// Limits on the grid a dump header may claim.
const (
	maxHalfBins   = 1 << 20
	maxHalfValues = 1 << 28
)

// ErrNotHalf reports a stream that is not a half-precision spectrogram dump.
var ErrNotHalf = errors.New("not a half-precision spectrogram")

// Half returns the dB grid as IEEE 754 half-precision bit patterns, frequency-major.
func (s *Spectrogram) Half() []uint16 {
	var out []uint16
	for _, row := range s.Power {
		for _, v := range row {
			out = append(out, float16.Fromfloat32(float32(v)).Bits())
		}
	}
	return out
}

// WriteHalf writes a little-endian dump: magic, frequency bins, time bins, half floats.
func (s *Spectrogram) WriteHalf(w io.Writer) error {
	var times int
	if len(s.Power) > 0 {
		times = len(s.Power[0])
	}
	header := struct {
		Magic [4]byte
		Bins  uint32
		Times uint32
	}{halfMagic, uint32(len(s.Power)), uint32(times)}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, s.Half())
}

// ReadHalf reads a WriteHalf dump back into a dB grid indexed [frequency][time].
func ReadHalf(r io.Reader) ([][]float32, error) {
	var header struct {
		Magic [4]byte
		Bins  uint32
		Times uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != halfMagic {
		return nil, ErrNotHalf
	}
	if header.Bins > maxHalfBins || uint64(header.Bins)*uint64(header.Times) > maxHalfValues {
		return nil, fmt.Errorf("%w: %d x %d values over limit", ErrNotHalf, header.Bins, header.Times)
	}

	// rows are read one at a time so a truncated dump fails before the
	// whole claimed grid is allocated
	out := make([][]float32, 0, min(int(header.Bins), 1024))
	bits := make([]uint16, header.Times)
	for k := 0; k < int(header.Bins); k++ {
		if err := binary.Read(r, binary.LittleEndian, bits); err != nil {
			return nil, err
		}
		row := make([]float32, len(bits))
		for i, b := range bits {
			row[i] = float16.Frombits(b).Float32()
		}
		out = append(out, row)
	}
	return out, nil
}
