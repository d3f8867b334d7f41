package mp4

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probablykasper/redlux"
)

// descriptor encodes tag + length + body. longLength forces the redundant
// multi-byte length form some muxers emit.
func descriptor(tag byte, longLength bool, body ...[]byte) []byte {
	var data []byte
	for _, b := range body {
		data = append(data, b...)
	}
	out := []byte{tag}
	if longLength {
		out = append(out, 0x80, 0x80, 0x80|byte(len(data)>>7), byte(len(data))&0x7f)
	} else {
		out = append(out, byte(len(data)))
	}
	return append(out, data...)
}

func buildESDSChain(oti byte, asc []byte, longLength bool) []byte {
	var decSpecific []byte
	if asc != nil {
		decSpecific = descriptor(mp4DecSpecificDescrTag, longLength, asc)
	}
	decConfig := descriptor(mp4DecConfigDescrTag, longLength,
		[]byte{oti, 0x15, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, decSpecific)
	return descriptor(mp4ESDescrTag, longLength, []byte{0, 1, 0}, decConfig)
}

func buildBox(name string, payload []byte) []byte {
	box := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(box, uint32(len(box)))
	copy(box[4:8], name)
	copy(box[8:], payload)
	return box
}

func buildMP4AEntry(chain []byte) []byte {
	esds := buildBox("esds", append([]byte{0, 0, 0, 0}, chain...))
	fields := make([]byte, 28) // reserved, data ref index, version 0 audio fields
	return buildBox("mp4a", append(fields, esds...))
}

func buildStsd(entries ...[]byte) []byte {
	payload := be32(0, uint32(len(entries)))
	for _, e := range entries {
		payload = append(payload, e...)
	}
	return payload
}

func TestParseStsd_AAC(t *testing.T) {
	t.Parallel()

	asc := []byte{0x12, 0x10}
	entry, err := parseStsd(buildStsd(buildMP4AEntry(buildESDSChain(0x40, asc, false))))
	require.NoError(t, err)
	require.Equal(t, redlux.AAC, entry.codec)
	require.Equal(t, asc, entry.decConfig)
}

func TestParseStsd_AACLongDescriptorLengths(t *testing.T) {
	t.Parallel()

	asc := []byte{0x2b, 0x11, 0x88, 0x00}
	entry, err := parseStsd(buildStsd(buildMP4AEntry(buildESDSChain(0x40, asc, true))))
	require.NoError(t, err)
	require.Equal(t, redlux.AAC, entry.codec)
	require.Equal(t, asc, entry.decConfig)
}

func TestParseStsd_MP3InsideMP4A(t *testing.T) {
	t.Parallel()

	entry, err := parseStsd(buildStsd(buildMP4AEntry(buildESDSChain(0x6b, nil, false))))
	require.NoError(t, err)
	require.Equal(t, redlux.MP3, entry.codec)
	require.Nil(t, entry.decConfig)
}

func TestParseStsd_UnknownObjectType(t *testing.T) {
	t.Parallel()

	entry, err := parseStsd(buildStsd(buildMP4AEntry(buildESDSChain(0xdd, nil, false))))
	require.NoError(t, err)
	require.Equal(t, redlux.Unknown, entry.codec)
	require.Nil(t, entry.decConfig)
}

func TestParseStsd_OtherFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		codec  redlux.CodecType
	}{
		{format: "alac", codec: redlux.ALAC},
		{format: "Opus", codec: redlux.Opus},
		{format: ".mp3", codec: redlux.MP3},
		{format: "avc1", codec: redlux.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			entry, err := parseStsd(buildStsd(buildBox(tt.format, make([]byte, 28))))
			require.NoError(t, err)
			require.Equal(t, tt.codec, entry.codec)
			require.Nil(t, entry.decConfig)
		})
	}
}

func TestParseStsd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "short", payload: []byte{0, 0}},
		{name: "no_entries", payload: be32(0, 0)},
		{name: "short_entry", payload: be32(0, 1, 4)},
		{name: "mp4a_without_esds", payload: buildStsd(buildBox("mp4a", make([]byte, 28)))},
		{name: "truncated_descriptor", payload: buildStsd(buildMP4AEntry([]byte{mp4ESDescrTag, 0x20, 0, 1}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseStsd(tt.payload)
			require.Error(t, err)
		})
	}
}

func TestParseDescLength(t *testing.T) {
	t.Parallel()

	n, length, err := parseDescLength([]byte{0x05})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 5, length)

	n, length, err = parseDescLength([]byte{0x81, 0x02})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 0x82, length)

	_, _, err = parseDescLength([]byte{0x80, 0x80})
	require.Error(t, err)

	_, _, err = parseDescLength([]byte{0x80, 0x80, 0x80, 0x80, 0x01})
	require.Error(t, err)
}
