//nolint:mnd // .
package aac

import (
	"errors"
	"fmt"
	"io"

	"github.com/probablykasper/redlux"
	"github.com/probablykasper/redlux/utils/bits"
)

// Audio object types, numbered as in libavcodec/mpeg4audio.h.
const (
	AotAacMain     = 1 + iota // Main
	AotAacLc                  // Low Complexity
	AotAacSsr                 // Scalable Sample Rate
	AotAacLtp                 // Long Term Prediction
	AotSbr                    // Spectral Band Replication
	AotAacScalable            // Scalable
)

const (
	AotPs     = 29 // Parametric Stereo
	AotEscape = 31 // Escape value
)

// MPEG4AudioConfig is the parsed form of a track's AudioSpecificConfig.
// SampleRateIndex always describes the core coder; when SBR/PS signalling is
// explicit, the doubled output rate lives in the Ext fields.
type MPEG4AudioConfig struct {
	SampleRate         int
	ChannelLayout      redlux.ChannelLayout
	ObjectType         uint
	SampleRateIndex    uint
	ChannelConfig      uint
	ExtObjectType      uint // AotSbr or AotPs when the extension is signalled
	ExtSampleRateIndex uint
	ExtSampleRate      int
}

func (config *MPEG4AudioConfig) IsValid() bool {
	return config.ObjectType > 0
}

func (config *MPEG4AudioConfig) Complete() {
	if config.SampleRate == 0 && config.SampleRateIndex < uint(len(sampleRateTable)) {
		config.SampleRate = sampleRateTable[config.SampleRateIndex]
	}
	if config.ExtSampleRate == 0 && config.ExtObjectType != 0 &&
		config.ExtSampleRateIndex < uint(len(sampleRateTable)) {
		config.ExtSampleRate = sampleRateTable[config.ExtSampleRateIndex]
	}
	if config.ChannelConfig < uint(len(chanConfigTable)) {
		config.ChannelLayout = chanConfigTable[config.ChannelConfig]
	}
}

var sampleRateTable = []int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

/*
These are the channel configurations:
0: Defined in AOT Specifc Config
1: 1 channel: front-center
2: 2 channels: front-left, front-right
3: 3 channels: front-center, front-left, front-right
4: 4 channels: front-center, front-left, front-right, back-center
5: 5 channels: front-center, front-left, front-right, back-left, back-right
6: 6 channels: front-center, front-left, front-right, back-left, back-right, LFE-channel
7: 8 channels: front-center, front-left, front-right, side-left, side-right, back-left, back-right, LFE-channel
8-15: Reserved.
*/
var chanConfigTable = []redlux.ChannelLayout{
	0,
	redlux.ChFrontCenter,
	redlux.ChFrontLeft | redlux.ChFrontRight,
	redlux.ChFrontCenter | redlux.ChFrontLeft | redlux.ChFrontRight,
	redlux.ChFrontCenter | redlux.ChFrontLeft | redlux.ChFrontRight | redlux.ChBackCenter,
	redlux.ChFrontCenter | redlux.ChFrontLeft | redlux.ChFrontRight | redlux.ChBackLeft | redlux.ChBackRight,
	redlux.ChFrontCenter | redlux.ChFrontLeft | redlux.ChFrontRight | redlux.ChBackLeft | redlux.ChBackRight | redlux.ChLowFreq,                                            //nolint: lll
	redlux.ChFrontCenter | redlux.ChFrontLeft | redlux.ChFrontRight | redlux.ChSideLeft | redlux.ChSideRight | redlux.ChBackLeft | redlux.ChBackRight | redlux.ChLowFreq, //nolint: lll
}

const explicitSampleRateIndex = 0xf

func readObjectType(r *bits.Reader) (objectType uint, err error) {
	if objectType, err = r.Read(5); err != nil {
		return
	}
	if objectType == AotEscape {
		var i uint
		if i, err = r.Read(6); err != nil {
			return
		}
		objectType = 32 + i
	}
	return
}

func writeObjectType(w *bits.Writer, objectType uint) (err error) {
	if objectType >= 32 {
		if err = w.WriteBits(AotEscape, 5); err != nil {
			return
		}
		return w.WriteBits(objectType-32, 6)
	}
	return w.WriteBits(objectType, 5)
}

func readSampleRate(r *bits.Reader) (index uint, rate int, err error) {
	if index, err = r.Read(4); err != nil {
		return
	}
	if index == explicitSampleRateIndex {
		var v uint
		if v, err = r.Read(24); err != nil {
			return
		}
		rate = int(v)
		return
	}
	if index < uint(len(sampleRateTable)) {
		rate = sampleRateTable[index]
	}
	return
}

func writeSampleRate(w *bits.Writer, index uint, rate int) (err error) {
	if index >= explicitSampleRateIndex {
		if err = w.WriteBits(explicitSampleRateIndex, 4); err != nil {
			return
		}
		return w.WriteBits(uint(rate), 24)
	}
	return w.WriteBits(index, 4)
}

// ParseMPEG4AudioConfigBytes decodes an AudioSpecificConfig per the layout of
// avpriv_mpeg4audio_get_config() in libavcodec/mpeg4audio.c, including
// explicit SBR/PS signalling and the trailing 0x2b7 sync extension.
func ParseMPEG4AudioConfigBytes(data []byte) (config MPEG4AudioConfig, err error) {
	if len(data) == 0 {
		return config, errors.New("aacparser: empty MPEG4 audio config data")
	}

	r := bits.NewReader(data)

	if config.ObjectType, err = readObjectType(r); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for object type: %w", err)
	}
	if config.SampleRateIndex, config.SampleRate, err = readSampleRate(r); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for sample rate index: %w", err)
	}
	if config.ChannelConfig, err = r.Read(4); err != nil {
		return config, fmt.Errorf("aacparser: insufficient data for channel config: %w", err)
	}

	if config.ObjectType == AotSbr || config.ObjectType == AotPs {
		// Explicit signalling: the SBR output rate follows the channel
		// config, then the core object type. The core rate stays in
		// SampleRateIndex.
		config.ExtObjectType = config.ObjectType
		if config.ExtSampleRateIndex, config.ExtSampleRate, err = readSampleRate(r); err != nil {
			return config, fmt.Errorf("aacparser: insufficient data for extension sample rate: %w", err)
		}
		if config.ObjectType, err = readObjectType(r); err != nil {
			return config, fmt.Errorf("aacparser: insufficient data for core object type: %w", err)
		}
	} else {
		scanSyncExtension(r, &config)
	}

	(&config).Complete()
	return config, nil
}

// scanSyncExtension looks for a backwards-compatible extension descriptor
// (sync word 0x2b7) after the specific config and lifts its SBR/PS
// signalling into config. Absence or truncation is not an error.
func scanSyncExtension(r *bits.Reader, config *MPEG4AudioConfig) {
	for r.BitsLeft() > 15 {
		if r.Peek(11) != 0x2b7 {
			_ = r.Skip(1)
			continue
		}
		_ = r.Skip(11)

		objectType, err := readObjectType(r)
		if err != nil || objectType != AotSbr {
			return
		}
		sbr, err := r.ReadBit()
		if err != nil || sbr == 0 {
			return
		}
		extIndex, extRate, err := readSampleRate(r)
		if err != nil {
			return
		}
		config.ExtObjectType = AotSbr
		config.ExtSampleRateIndex = extIndex
		config.ExtSampleRate = extRate

		if r.BitsLeft() > 11 {
			if v, err := r.Read(11); err == nil && v == 0x548 {
				if ps, err := r.ReadBit(); err == nil && ps == 1 {
					config.ExtObjectType = AotPs
				}
			}
		}
		return
	}
}

// WriteMPEG4AudioConfig encodes config back into AudioSpecificConfig bytes.
// SBR/PS extensions are written in the explicit hierarchical form.
func WriteMPEG4AudioConfig(w io.Writer, config MPEG4AudioConfig) (err error) {
	if w == nil {
		return errors.New("aacparser: writer is nil")
	}

	if config.SampleRateIndex == 0 && config.SampleRate != 0 {
		for i, rate := range sampleRateTable {
			if rate == config.SampleRate {
				config.SampleRateIndex = uint(i) //nolint:gosec // table has 13 entries
			}
		}
	}
	if config.ChannelConfig == 0 && config.ChannelLayout != 0 {
		for i, layout := range chanConfigTable {
			if layout == config.ChannelLayout {
				config.ChannelConfig = uint(i) //nolint:gosec // table has 8 entries
			}
		}
	}

	explicit := config.ExtObjectType == AotSbr || config.ExtObjectType == AotPs

	bw := &bits.Writer{W: w}
	first := config.ObjectType
	if explicit {
		first = config.ExtObjectType
	}
	if err = writeObjectType(bw, first); err != nil {
		return
	}
	if err = writeSampleRate(bw, config.SampleRateIndex, config.SampleRate); err != nil {
		return
	}
	if err = bw.WriteBits(config.ChannelConfig, 4); err != nil {
		return
	}
	if explicit {
		if err = writeSampleRate(bw, config.ExtSampleRateIndex, config.ExtSampleRate); err != nil {
			return
		}
		if err = writeObjectType(bw, config.ObjectType); err != nil {
			return
		}
	}

	// GASpecificConfig: 1024-sample frames, no core coder, no extension.
	if err = bw.WriteBits(0, 3); err != nil {
		return
	}
	return bw.FlushBits()
}
