// Package compression compresses workspace blobs before they are stored.
package compression

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ByName returns the compressor registered under name; zstd is the default.
func ByName(name string) Compressor {
	switch name {
	case "gzip":
		return GzipCompressor{}
	default:
		return ZstdCompressor{}
	}
}
