package sonify

import "errors"
import "fmt"

var (
	// ErrLoad reports an image or audio source that could not be read or decoded.
	ErrLoad = errors.New("load error")
	// ErrInvalidParameters reports a numeric constraint violation, detected before any computation.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrDeviceUnavailable reports a playback device that could not be opened.
	ErrDeviceUnavailable = errors.New("device unavailable")
)

// ParamError names the parameter that failed validation.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

// Invalid returns a *ParamError for parameter name holding value.
func Invalid(name string, value float64, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason}
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", ErrInvalidParameters, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameters }

// LoadError wraps the failure to read Source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrLoad, e.Source)
	}
	return fmt.Sprintf("%s: %s: %v", ErrLoad, e.Source, e.Err)
}

// Unwrap exposes both ErrLoad and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}

// DeviceError wraps the failure to open or drive a playback device.
func DeviceError(device string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, device, err)
}
