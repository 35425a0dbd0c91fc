package exif

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tiffASCII    = 2
	tiffShort    = 3
	tiffLong     = 4
	tiffRational = 5
)

type tiffEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) tiffEntry {
	b := append([]byte(s), 0)
	return tiffEntry{tag: tag, typ: tiffASCII, count: uint32(len(b)), data: b}
}

func shortEntry(tag uint16, v uint16) tiffEntry {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return tiffEntry{tag: tag, typ: tiffShort, count: 1, data: b}
}

func longEntry(tag uint16, v uint32) tiffEntry {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return tiffEntry{tag: tag, typ: tiffLong, count: 1, data: b}
}

func rationalEntry(tag uint16, num, den uint32) tiffEntry {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:], num)
	binary.LittleEndian.PutUint32(b[4:], den)
	return tiffEntry{tag: tag, typ: tiffRational, count: 1, data: b}
}

// encodeIFD lays out a directory at offset followed by its out-of-line data.
func encodeIFD(entries []tiffEntry, offset uint32) []byte {
	var ifd, data bytes.Buffer
	dataOffset := offset + uint32(2+12*len(entries)+4)

	_ = binary.Write(&ifd, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		_ = binary.Write(&ifd, binary.LittleEndian, e.tag)
		_ = binary.Write(&ifd, binary.LittleEndian, e.typ)
		_ = binary.Write(&ifd, binary.LittleEndian, e.count)
		if len(e.data) <= 4 {
			v := make([]byte, 4)
			copy(v, e.data)
			ifd.Write(v)
			continue
		}
		_ = binary.Write(&ifd, binary.LittleEndian, dataOffset+uint32(data.Len()))
		data.Write(e.data)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}
	_ = binary.Write(&ifd, binary.LittleEndian, uint32(0))

	return append(ifd.Bytes(), data.Bytes()...)
}

// buildTIFF returns a little-endian TIFF with the given IFD0 entries and an
// Exif sub-directory.
func buildTIFF(ifd0 []tiffEntry, exifIFD []tiffEntry) []byte {
	const ifd0Offset = 8

	withPointer := append(append([]tiffEntry{}, ifd0...), longEntry(0x8769, 0))
	size := len(encodeIFD(withPointer, ifd0Offset))
	exifOffset := uint32(ifd0Offset + size)
	withPointer[len(withPointer)-1] = longEntry(0x8769, exifOffset)

	var buf bytes.Buffer
	buf.WriteString("II")
	_ = binary.Write(&buf, binary.LittleEndian, uint16(42))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(ifd0Offset))
	buf.Write(encodeIFD(withPointer, ifd0Offset))
	buf.Write(encodeIFD(exifIFD, exifOffset))
	return buf.Bytes()
}

func TestExtractorExtract(t *testing.T) {
	payload := buildTIFF(
		[]tiffEntry{
			asciiEntry(0x010F, "Canon"),
			asciiEntry(0x0110, "Canon EOS R8"),
		},
		[]tiffEntry{
			rationalEntry(0x829A, 1, 500),
			rationalEntry(0x829D, 28, 10),
			shortEntry(0x8827, 400),
			asciiEntry(0x9003, "2024:05:17 18:42:03"),
			rationalEntry(0x920A, 50, 1),
			asciiEntry(0xA434, "RF24-105mm F4 L IS USM"),
		},
	)

	meta := NewExtractor(nil).Extract(bytes.NewReader(payload), "test.tiff")

	assert.Equal(t, "Canon", meta.CameraMake)
	assert.Equal(t, "EOS R8", meta.CameraModel)
	assert.Equal(t, "RF24-105mm F4 L IS USM", meta.Lens)
	assert.Equal(t, "f/2.8", meta.Aperture)
	assert.Equal(t, "1/500", meta.ShutterSpeed)
	assert.Equal(t, 400, meta.ISO)
	assert.Equal(t, "50mm", meta.FocalLength)
	require.NotNil(t, meta.DateTaken)
	assert.Equal(t, 2024, meta.DateTaken.Year())
	assert.Nil(t, meta.Latitude)
}

func TestExtractorPartialMetadata(t *testing.T) {
	payload := buildTIFF(
		[]tiffEntry{asciiEntry(0x010F, "SONY")},
		[]tiffEntry{rationalEntry(0x829A, 1, 60)},
	)

	meta := NewExtractor(nil).Extract(bytes.NewReader(payload), "partial.tiff")

	assert.Equal(t, "SONY", meta.CameraMake)
	assert.Equal(t, "1/60", meta.ShutterSpeed)
	assert.Equal(t, "", meta.Aperture)
	assert.Equal(t, 0, meta.ISO)
	assert.Nil(t, meta.DateTaken)
}

func TestExtractorNeverFails(t *testing.T) {
	inputs := map[string][]byte{
		"empty":          {},
		"text":           []byte("definitely not an image"),
		"png signature":  {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
		"truncated tiff": []byte("II*\x00\x08\x00"),
		"jpeg no app1":   {0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04, 0x00, 0x00, 0xFF, 0xD9},
	}

	for name, payload := range inputs {
		t.Run(name, func(t *testing.T) {
			meta := NewExtractor(nil).Extract(bytes.NewReader(payload), name)
			assert.True(t, meta.Empty())
		})
	}
}

func TestExtractorReadWrapsError(t *testing.T) {
	_, err := NewExtractor(nil).Read(strings.NewReader("nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
}
