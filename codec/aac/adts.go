//nolint:mnd // .
package aac

import "fmt"

// ADTSHeaderLength is the size of the fixed no-CRC header variant.
const ADTSHeaderLength = 7

// adtsMaxFrameLength is the capacity of the 13-bit frame_length field.
const adtsMaxFrameLength = 1<<13 - 1

// ADTSHeader is the fixed no-CRC transport header prefixed to each raw AAC
// frame so a decoder can consume a bare stream of frames.
//
// AAAAAAAA AAAABCCD EEFFFFGH HHIJKLMM MMMMMMMM MMMOOOOO OOOOOOPP
// A syncword, B ID, C layer, D protection_absent, E profile,
// F sampling_frequency_index, G private_bit, H channel_configuration,
// I original/copy, J home, K copyright_id_bit, L copyright_id_start,
// M frame_length, O buffer_fullness, P number_of_raw_data_blocks-1.
type ADTSHeader [ADTSHeaderLength]byte

// transportObjectType maps the configured object type onto the one signalled
// in the header's 2-bit profile field. SBR and PS are coerced to AAC-LC:
// ADTS cannot signal them, so the decoder detects them in-band ("implicit
// signalling").
func transportObjectType(config MPEG4AudioConfig) (uint, error) {
	switch config.ObjectType {
	case AotAacLc, AotSbr, AotPs:
		return AotAacLc, nil
	default:
		return 0, UnsupportedCodecError{ObjectType: config.ObjectType}
	}
}

// NewADTSHeader builds the header for one frame carrying payloadLength raw
// bytes. The sampling index is the core-coder index, never the doubled SBR
// output rate.
func NewADTSHeader(config MPEG4AudioConfig, payloadLength int) (header ADTSHeader, err error) {
	objectType, err := transportObjectType(config)
	if err != nil {
		return header, err
	}
	if config.SampleRateIndex >= uint(len(sampleRateTable)) {
		// Indices 13-14 are reserved and 15 (explicit frequency) is
		// forbidden in ADTS.
		return header, UnsupportedCodecError{SampleRateIndex: config.SampleRateIndex}
	}

	frameLength := ADTSHeaderLength + payloadLength
	if payloadLength < 0 || frameLength > adtsMaxFrameLength {
		return header, FrameTooLargeError{FrameLength: frameLength}
	}

	header[0] = 0xff
	header[1] = 0xf1 // MPEG-4, layer 00, no CRC
	header[2] = (byte(objectType-1)&0x3)<<6 |
		(byte(config.SampleRateIndex)&0xf)<<2 | byte(config.ChannelConfig>>2)&0x1
	header[3] = byte(config.ChannelConfig&0x3)<<6 | byte(frameLength>>11)&0x3
	header[4] = byte(frameLength >> 3)
	header[5] = (byte(frameLength)&0x7)<<5 | 0x1f // fullness high bits: VBR sentinel
	header[6] = 0xfc                              // fullness low bits, one raw data block

	return header, nil
}

// ParseADTSHeader decodes the header at the start of frame. It accepts both
// protected and unprotected variants.
func ParseADTSHeader(frame []byte) (config MPEG4AudioConfig, hdrlen int, framelen int, samples int, err error) {
	if len(frame) < ADTSHeaderLength {
		err = fmt.Errorf("aacparser: insufficient data for ADTS header, need at least %d bytes, got %d",
			ADTSHeaderLength, len(frame))
		return
	}

	if frame[0] != 0xff || frame[1]&0xf6 != 0xf0 {
		err = fmt.Errorf("aacparser: invalid ADTS sync word: %02x %02x", frame[0], frame[1])
		return
	}

	config.ObjectType = uint(frame[2]>>6) + 1
	config.SampleRateIndex = uint(frame[2] >> 2 & 0xf)
	config.ChannelConfig = uint(frame[2]<<2&0x4 | frame[3]>>6&0x3)

	if config.SampleRateIndex >= uint(len(sampleRateTable)) {
		err = fmt.Errorf("aacparser: invalid sample rate index: %d", config.SampleRateIndex)
		return
	}
	if config.ChannelConfig == 0 || config.ChannelConfig >= uint(len(chanConfigTable)) {
		err = fmt.Errorf("aacparser: invalid channel configuration: %d", config.ChannelConfig)
		return
	}

	(&config).Complete()

	framelen = int(frame[3]&0x3)<<11 | int(frame[4])<<3 | int(frame[5]>>5)
	samples = (int(frame[6]&0x3) + 1) * 1024

	hdrlen = ADTSHeaderLength
	if frame[1]&0x1 == 0 {
		hdrlen = 9
		if len(frame) < hdrlen {
			err = fmt.Errorf("aacparser: insufficient data for protected ADTS header, need 9 bytes, got %d", len(frame))
			return
		}
	}

	if framelen < hdrlen {
		err = fmt.Errorf("aacparser: invalid ADTS frame length: %d (must be >= %d)", framelen, hdrlen)
		return
	}

	return
}

// Accessors for the builder's own no-CRC layout.

func (h ADTSHeader) Profile() uint8 {
	return h[2] >> 6
}

func (h ADTSHeader) SampleRateIndex() uint8 {
	return h[2] >> 2 & 0xf
}

func (h ADTSHeader) ChannelConfig() uint8 {
	return (h[2]&0x1)<<2 | h[3]>>6
}

func (h ADTSHeader) FrameLength() int {
	return int(h[3]&0x3)<<11 | int(h[4])<<3 | int(h[5]>>5)
}

func (h ADTSHeader) PayloadLength() int {
	return h.FrameLength() - ADTSHeaderLength
}
