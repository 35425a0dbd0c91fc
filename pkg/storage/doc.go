// Package storage persists image files.
//
// Storage is the boundary between the catalog and the bytes it describes.
// Three drivers are provided:
//
//   - Local: files under a root directory, written via a temp file and rename
//   - S3: objects in an AWS S3 bucket (aws-sdk-go-v2)
//   - Minio: objects in any S3-compatible server (minio-go)
//
// Names are flat: a name is a single path element such as
// "3f0c9b8e-....jpg". Names containing separators, "..", or a leading dot
// are rejected with ErrInvalidName.
package storage
