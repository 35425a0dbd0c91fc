package exif

import (
	"errors"
	"fmt"
	"io"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"go.uber.org/zap"
)

// ErrExtraction wraps every failure to read a metadata block. It is
// reported to the log only.
var ErrExtraction = errors.New("metadata extraction failed")

// Extractor reads EXIF metadata from image payloads.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor returns an Extractor that logs failures to log. A nil
// logger discards them.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract returns the normalized metadata of the payload read from r. Any
// decode failure yields an empty Metadata; name is used for logging only.
func (e *Extractor) Extract(r io.Reader, name string) Metadata {
	raw, err := e.Read(r)
	if err != nil {
		e.log.Warn("no usable image metadata", zap.String("file", name), zap.Error(err))
		return Metadata{}
	}
	return Normalize(raw)
}

// Read decodes the raw tag values from r.
func (e *Extractor) Read(r io.Reader) (raw Raw, err error) {
	defer func() {
		if p := recover(); p != nil {
			raw = Raw{}
			err = fmt.Errorf("%w: decoder panic: %v", ErrExtraction, p)
		}
	}()

	x, err := goexif.Decode(r)
	if err != nil {
		return Raw{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	raw.Make = stringTag(x, goexif.Make)
	raw.Model = stringTag(x, goexif.Model)
	raw.Lens = stringTag(x, goexif.LensModel)
	raw.FNumber = numberTag(x, goexif.FNumber)
	raw.ExposureTime = numberTag(x, goexif.ExposureTime)
	raw.FocalLength = numberTag(x, goexif.FocalLength)
	raw.DateTimeOriginal = stringTag(x, goexif.DateTimeOriginal)

	if tag, err := x.Get(goexif.ISOSpeedRatings); err == nil {
		if v, err := tag.Int(0); err == nil {
			raw.ISO = v
		}
	}

	// GPS is best effort.
	if lat, long, err := x.LatLong(); err == nil {
		raw.Latitude = &lat
		raw.Longitude = &long
	}

	return raw, nil
}

func stringTag(x *goexif.Exif, name goexif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return clean(s)
}

func numberTag(x *goexif.Exif, name goexif.FieldName) *Number {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}

	switch tag.Format() {
	case tiff.RatVal:
		num, den, err := tag.Rat2(0)
		if err != nil {
			return nil
		}
		return Rat(num, den)
	case tiff.FloatVal:
		v, err := tag.Float(0)
		if err != nil {
			return nil
		}
		return Dec(v)
	case tiff.IntVal:
		v, err := tag.Int64(0)
		if err != nil {
			return nil
		}
		return Dec(float64(v))
	default:
		return nil
	}
}
