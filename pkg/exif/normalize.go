package exif

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the EXIF timestamp layout, "YYYY:MM:DD HH:MM:SS".
const DateTimeLayout = "2006:01:02 15:04:05"

// Number is a numeric tag value. EXIF stores most exposure values as
// rationals, but some writers emit decimals.
type Number struct {
	Num, Den int64
	Decimal  float64
	Rational bool
}

// Rat returns a rational Number.
func Rat(num, den int64) *Number {
	return &Number{Num: num, Den: den, Rational: true}
}

// Dec returns a decimal Number.
func Dec(v float64) *Number {
	return &Number{Decimal: v}
}

// Float returns the value as a float64. ok is false for a zero denominator.
func (n Number) Float() (v float64, ok bool) {
	if !n.Rational {
		return n.Decimal, true
	}
	if n.Den == 0 {
		return 0, false
	}
	return float64(n.Num) / float64(n.Den), true
}

// Raw holds tag values as read from the file, before formatting.
type Raw struct {
	Make             string
	Model            string
	Lens             string
	FNumber          *Number
	ExposureTime     *Number
	FocalLength      *Number
	ISO              int
	DateTimeOriginal string
	Latitude         *float64
	Longitude        *float64
}

// Metadata is the normalized record merged into an image row. Absent text
// fields are empty strings and an absent ISO is zero.
type Metadata struct {
	CameraMake   string
	CameraModel  string
	Lens         string
	Aperture     string
	ShutterSpeed string
	ISO          int
	FocalLength  string
	DateTaken    *time.Time
	Latitude     *float64
	Longitude    *float64
}

// Empty reports whether no field was recovered.
func (m Metadata) Empty() bool {
	return m == Metadata{}
}

// Camera returns the display string for the camera body.
func (m Metadata) Camera() string {
	return CameraDisplay(m.CameraMake, m.CameraModel)
}

// Location returns "lat, long" with five decimals, or "" without GPS.
func (m Metadata) Location() string {
	if m.Latitude == nil || m.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("%.5f, %.5f", *m.Latitude, *m.Longitude)
}

// Normalize formats every raw value.
func Normalize(raw Raw) Metadata {
	brand := clean(raw.Make)
	meta := Metadata{
		CameraMake:   brand,
		CameraModel:  StripMake(brand, clean(raw.Model)),
		Lens:         clean(raw.Lens),
		Aperture:     FormatAperture(raw.FNumber),
		ShutterSpeed: FormatShutterSpeed(raw.ExposureTime),
		FocalLength:  FormatFocalLength(raw.FocalLength),
		Latitude:     raw.Latitude,
		Longitude:    raw.Longitude,
	}
	if raw.ISO > 0 {
		meta.ISO = raw.ISO
	}
	if t, err := time.Parse(DateTimeLayout, clean(raw.DateTimeOriginal)); err == nil {
		meta.DateTaken = &t
	}
	return meta
}

// FormatAperture renders an f-number with one decimal place, e.g. "f/2.8".
func FormatAperture(n *Number) string {
	if n == nil {
		return ""
	}
	v, ok := n.Float()
	if !ok || v <= 0 {
		return ""
	}
	return fmt.Sprintf("f/%.1f", v)
}

// FormatShutterSpeed renders an exposure time. Rationals with a numerator
// of one render as "1/d", other rationals verbatim as "n/d". Decimals of at
// least one second render as a whole number; shorter decimals render as
// "1/round(1/v)".
func FormatShutterSpeed(n *Number) string {
	if n == nil {
		return ""
	}
	if n.Rational {
		if n.Den == 0 {
			return ""
		}
		if n.Num == 1 {
			return "1/" + strconv.FormatInt(n.Den, 10)
		}
		return strconv.FormatInt(n.Num, 10) + "/" + strconv.FormatInt(n.Den, 10)
	}

	v := n.Decimal
	switch {
	case v >= 1:
		return strconv.FormatInt(int64(v), 10)
	case v > 0:
		return "1/" + strconv.FormatInt(int64(math.Round(1/v)), 10)
	default:
		return ""
	}
}

// FormatFocalLength renders a focal length in millimetres using the
// shortest decimal form of the value, e.g. "50mm" or "24.5mm".
func FormatFocalLength(n *Number) string {
	if n == nil {
		return ""
	}
	v, ok := n.Float()
	if !ok || v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

// StripMake removes a leading copy of brand from model, so that
// ("Canon", "Canon EOS R8") yields "EOS R8".
func StripMake(brand, model string) string {
	if brand == "" || !strings.HasPrefix(model, brand) {
		return model
	}
	return strings.TrimSpace(model[len(brand):])
}

// CameraDisplay joins make and model with a single space, dropping a
// duplicated brand prefix from the model.
func CameraDisplay(brand, model string) string {
	brand = clean(brand)
	model = StripMake(brand, clean(model))
	switch {
	case brand == "":
		return model
	case model == "":
		return brand
	default:
		return brand + " " + model
	}
}

func clean(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
