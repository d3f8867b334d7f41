package aac

import (
	"bytes"
	"fmt"

	"github.com/probablykasper/redlux"
	"github.com/probablykasper/redlux/codec"
)

// CodecParameters bundles a track's raw AudioSpecificConfig with its parsed
// form. Built once at open time, read-only afterwards.
type CodecParameters struct {
	codec.BaseParameters
	ConfigBytes []byte
	Config      MPEG4AudioConfig
}

var _ redlux.AudioCodecParameters = &CodecParameters{}

func NewCodecDataFromMPEG4AudioConfig(config MPEG4AudioConfig) (cod CodecParameters, err error) {
	b := new(bytes.Buffer)
	if err = WriteMPEG4AudioConfig(b, config); err != nil {
		return
	}

	return NewCodecDataFromMPEG4AudioConfigBytes(b.Bytes())
}

func NewCodecDataFromMPEG4AudioConfigBytes(config []byte) (cod CodecParameters, err error) {
	cod.ConfigBytes = config
	if cod.Config, err = ParseMPEG4AudioConfigBytes(config); err != nil {
		err = fmt.Errorf("aacparser: parse MPEG4AudioConfig failed(%w)", err)
		return
	}
	cod.CodecType = redlux.AAC

	const bitsPerSample = 16
	cod.BRate = uint(cod.SampleRate()) * uint(cod.Channels()) * bitsPerSample //nolint:gosec // cannot overflow

	return
}

func (cd CodecParameters) MPEG4AudioConfigBytes() []byte {
	return cd.ConfigBytes
}

func (cd CodecParameters) ChannelLayout() redlux.ChannelLayout {
	return cd.Config.ChannelLayout
}

// SampleRate is the output rate: the doubled SBR rate when an extension is
// signalled, the core rate otherwise.
func (cd CodecParameters) SampleRate() uint64 {
	if cd.Config.ExtSampleRate > 0 {
		return uint64(cd.Config.ExtSampleRate)
	}
	return uint64(cd.Config.SampleRate) //nolint:gosec // cannot overflow
}

func (cd CodecParameters) Channels() uint8 {
	// Parametric Stereo reconstructs two channels from a mono core.
	if cd.Config.ExtObjectType == AotPs {
		return 2
	}
	return uint8(cd.Config.ChannelLayout.Count()) //nolint:gosec // cannot overflow
}

func (cd CodecParameters) Tag() string {
	return fmt.Sprintf("mp4a.40.%d", cd.Config.ObjectType)
}
