// Package exif reads capture metadata embedded in image files and
// normalizes it into display strings.
//
// # Extraction
//
// Extractor decodes the EXIF block of a JPEG or TIFF payload with
// github.com/rwcarlsen/goexif. Extraction never fails from the caller's
// point of view: payloads without metadata, unsupported containers and
// malformed blocks all produce an empty Metadata, and the cause is logged.
//
//	meta := exif.NewExtractor(logger).Extract(file, "IMG_0042.jpg")
//
// # Normalization
//
// Raw tag values are converted by Normalize:
//
//   - aperture: f-number to "f/X.X"
//   - shutter speed: "1/d" or "n/d" for rationals, "2" or "1/250" for decimals
//   - focal length: "{n/d}mm" in shortest form, e.g. "50mm", "24.5mm"
//   - camera: make and model with a duplicated brand prefix removed
package exif
