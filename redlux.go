// Package redlux exposes the AAC audio track of an MPEG-4 container as a
// self-describing ADTS bitstream that raw-AAC decoders can consume without
// understanding the container.
package redlux

import "io"

// AudioCodecParameters describes the configuration of an audio codec.
type AudioCodecParameters interface {
	Type() CodecType    // Returns the codec type.
	Tag() string        // Returns the codec identifier string (e.g. "mp4a.40.2").
	SampleRate() uint64 // Returns the output sampling frequency in Hz.
	Channels() uint8    // Returns the number of audio channels.
}

// Sample locates one compressed audio unit inside the container's media data.
type Sample struct {
	Offset int64  // Absolute byte offset into the container.
	Size   uint32 // Payload length in bytes.
}

// Track is a single media track of a parsed container. Tracks are built once
// at demux time and are read-only afterwards.
type Track struct {
	Codec   CodecType // The codec the track's samples are encoded with.
	Config  []byte    // Raw codec configuration record (AudioSpecificConfig for AAC).
	Samples []Sample  // Sample descriptors in decode order.
}

// Container is the parsed MPEG-4 collaborator: a track list plus the
// byte-range read primitive used to fetch sample payloads.
type Container interface {
	io.ReaderAt
	Tracks() []*Track
}

// Demuxer produces a Container from a media source.
type Demuxer interface {
	Demux() (Container, error) // Opens the source and returns the parsed container view.
	Close()                    // Releases resources used by the demuxer.
}
