//nolint:mnd // .
package mp4

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/probablykasper/redlux"
)

const (
	mp4ESDescrTag          = 3
	mp4DecConfigDescrTag   = 4
	mp4DecSpecificDescrTag = 5
)

// Object type indications carried in the DecoderConfig descriptor.
const (
	objectTypeMP4Audio = 0x40
	objectTypeMP3      = 0x6b
)

type sampleEntry struct {
	codec     redlux.CodecType
	decConfig []byte
}

// parseStsd reads the first sample description out of an stsd payload and
// maps its format onto a codec kind. Only the first entry matters: tracks
// with multiple descriptions are outside this package's vocabulary.
func parseStsd(payload []byte) (entry sampleEntry, err error) {
	const headerLen = 8 // version/flags, entry_count
	if len(payload) < headerLen {
		return entry, errors.New("mp4: short stsd payload")
	}
	if binary.BigEndian.Uint32(payload[4:8]) == 0 {
		return entry, errors.New("mp4: stsd without sample descriptions")
	}

	body := payload[headerLen:]
	if len(body) < 8 {
		return entry, errors.New("mp4: short stsd sample entry")
	}
	size := int(binary.BigEndian.Uint32(body[:4]))
	format := string(body[4:8])
	if size < 8 || size > len(body) {
		return entry, fmt.Errorf("mp4: bad stsd entry size %d", size)
	}

	switch format {
	case "mp4a":
		return parseMP4AEntry(body[:size])
	case "alac":
		entry.codec = redlux.ALAC
	case "Opus":
		entry.codec = redlux.Opus
	case ".mp3":
		entry.codec = redlux.MP3
	default:
		entry.codec = redlux.Unknown
	}
	return entry, nil
}

// parseMP4AEntry digs the esds child box out of an mp4a audio sample entry.
// Layout: 8-byte box header, 8 bytes reserved/data-ref-index, 20 bytes of
// audio fields (16 more for QuickTime version 1), then child boxes.
func parseMP4AEntry(entry []byte) (res sampleEntry, err error) {
	res.codec = redlux.AAC

	const fieldsEnd = 36
	if len(entry) < fieldsEnd {
		return res, errors.New("mp4: short mp4a sample entry")
	}
	off := fieldsEnd
	if binary.BigEndian.Uint16(entry[16:18]) == 1 {
		off += 16
	}

	for off+8 <= len(entry) {
		size := int(binary.BigEndian.Uint32(entry[off : off+4]))
		name := string(entry[off+4 : off+8])
		if size < 8 || off+size > len(entry) {
			return res, fmt.Errorf("mp4: bad %q child box size %d", name, size)
		}
		if name == "esds" {
			const fullBoxHeaderLen = 12 // box header + version/flags
			if size < fullBoxHeaderLen {
				return res, errors.New("mp4: short esds box")
			}
			var oti byte
			if oti, res.decConfig, err = parseESDescriptor(entry[off+fullBoxHeaderLen : off+size]); err != nil {
				return res, err
			}
			switch oti {
			case objectTypeMP4Audio:
			case objectTypeMP3:
				res.codec = redlux.MP3
				res.decConfig = nil
			default:
				res.codec = redlux.Unknown
				res.decConfig = nil
			}
			return res, nil
		}
		off += size
	}
	return res, errors.New("mp4: mp4a entry without esds box")
}

// parseESDescriptor walks the MPEG-4 descriptor chain inside an esds box and
// returns the object type indication together with the DecoderSpecificInfo
// payload (the raw codec configuration record).
func parseESDescriptor(b []byte) (oti byte, decConfig []byte, err error) {
	for len(b) > 0 {
		tag := b[0]
		hdrlen, datalen, err := parseDescLength(b[1:])
		if err != nil {
			return 0, nil, err
		}
		body := b[1+hdrlen:]
		if datalen > len(body) {
			return 0, nil, fmt.Errorf("mp4: descriptor 0x%02x truncated", tag)
		}

		switch tag {
		case mp4ESDescrTag:
			// ES_ID(2) + flags(1), then optional fields per flags; nested
			// descriptors follow.
			if len(body) < 3 {
				return 0, nil, errors.New("mp4: short ES descriptor")
			}
			flags := body[2]
			skip := 3
			if flags&0x80 != 0 { // streamDependenceFlag
				skip += 2
			}
			if flags&0x40 != 0 { // URL_Flag
				if len(body) < skip+1 {
					return 0, nil, errors.New("mp4: short ES descriptor URL")
				}
				skip += 1 + int(body[skip])
			}
			if flags&0x20 != 0 { // OCRstreamFlag
				skip += 2
			}
			if len(body) < skip {
				return 0, nil, errors.New("mp4: short ES descriptor")
			}
			b = body[skip:]
		case mp4DecConfigDescrTag:
			// objectTypeIndication(1) streamType(1) bufferSizeDB(3)
			// maxBitrate(4) avgBitrate(4), then nested descriptors.
			const size = 13
			if len(body) < size {
				return 0, nil, errors.New("mp4: short DecoderConfig descriptor")
			}
			oti = body[0]
			b = body[size:]
		case mp4DecSpecificDescrTag:
			return oti, body[:datalen], nil
		default:
			b = body[datalen:]
		}
	}
	if oti != 0 {
		// Config-less streams (e.g. MP3 in MP4) carry no DecSpecificInfo.
		return oti, nil, nil
	}
	return 0, nil, errors.New("mp4: esds without decoder config")
}

func parseDescLength(b []byte) (n, length int, err error) {
	for n < 4 {
		if len(b) < n+1 {
			return 0, 0, errors.New("mp4: truncated descriptor length")
		}
		c := b[n]
		n++
		length = length<<7 | int(c)&0x7f
		if c&0x80 == 0 {
			return n, length, nil
		}
	}
	return 0, 0, errors.New("mp4: descriptor length too long")
}
