package redlux

// CodecType represents the type of a codec.
type CodecType uint32

// The closed set of codec kinds the track locator can encounter. Anything a
// container may carry that is not listed here maps to Unknown.
const (
	Unknown CodecType = iota
	AAC
	ALAC
	MP3
	Opus
)

// String returns the human-readable string representation of a CodecType.
func (ct CodecType) String() string {
	switch ct {
	case AAC:
		return "AAC"
	case ALAC:
		return "ALAC"
	case MP3:
		return "MP3"
	case Opus:
		return "OPUS"
	}
	return "UNKNOWN"
}
