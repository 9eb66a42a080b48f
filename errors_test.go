package sonify

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParamErrorIs(t *testing.T) {
	t.Parallel()

	err := Invalid("maxFrequency", 100, "must be greater than minFrequency")
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("errors.Is(%v, ErrInvalidParameters) = false, want true", err)
	}
	if errors.Is(err, ErrLoad) {
		t.Errorf("errors.Is(%v, ErrLoad) = true, want false", err)
	}

	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("errors.As(%v, *ParamError) = false", err)
	}
	if pe.Name != "maxFrequency" {
		t.Errorf("Name = %q, want %q", pe.Name, "maxFrequency")
	}
	if !strings.Contains(err.Error(), "maxFrequency") {
		t.Errorf("Error() = %q, want it to name the parameter", err.Error())
	}
}

func TestLoadErrorIs(t *testing.T) {
	t.Parallel()

	err := error(&LoadError{Source: "a.png", Err: io.ErrUnexpectedEOF})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("errors.Is(%v, ErrLoad) = false, want true", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("errors.Is(%v, io.ErrUnexpectedEOF) = false, want true", err)
	}

	bare := error(&LoadError{Source: "b.png"})
	if !errors.Is(bare, ErrLoad) {
		t.Errorf("errors.Is(%v, ErrLoad) = false, want true", bare)
	}
}

func TestDeviceError(t *testing.T) {
	t.Parallel()

	err := DeviceError("speaker", errors.New("no such device"))
	if !errors.Is(err, ErrDeviceUnavailable) {
		t.Errorf("errors.Is(%v, ErrDeviceUnavailable) = false, want true", err)
	}
}
