// Package compress provides the codecs used to store audit snapshots.
package compress

// Compress encodes and decodes byte payloads.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ByName returns the codec registered under the given name, falling back to
// the nop codec for unknown names.
func ByName(name string) Compress {
	switch name {
	case "gzip":
		return NewGZip()
	case "brotli":
		return NewBrotli()
	default:
		return NewNop()
	}
}
