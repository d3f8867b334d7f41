package aac

import "fmt"

// UnsupportedCodecError represents a codec configuration that cannot be
// expressed in an ADTS transport header: an object type outside the
// AAC-LC/HE-AAC family, or a sampling index outside the 13-entry table.
type UnsupportedCodecError struct {
	ObjectType      uint
	SampleRateIndex uint
}

// Error returns the error message for UnsupportedCodecError.
func (e UnsupportedCodecError) Error() string {
	if e.ObjectType != 0 {
		return fmt.Sprintf("aac: unsupported audio object type %d", e.ObjectType)
	}
	return fmt.Sprintf("aac: unsupported sample rate index %d", e.SampleRateIndex)
}

// FrameTooLargeError represents a frame whose header-plus-payload length
// does not fit the 13-bit frame_length field.
type FrameTooLargeError struct {
	FrameLength int
}

// Error returns the error message for FrameTooLargeError.
func (e FrameTooLargeError) Error() string {
	return fmt.Sprintf("aac: frame length %d exceeds the 13-bit ADTS limit", e.FrameLength)
}
