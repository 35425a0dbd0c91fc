package config

//go:generate go run github.com/dmarkham/enumer -type StorageDriver -trimprefix StorageDriver -transform lower -yaml -output storage_driver.gen.go

// StorageDriver selects the storage backend for image files.
type StorageDriver int

const (
	StorageDriverLocal StorageDriver = iota + 1
	StorageDriverS3
	StorageDriverMinio
)
