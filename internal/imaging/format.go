package imaging

import "bytes"

// Magic numbers of the formats the upstream actually serves.
// Checked in order; first match wins.
var signatures = []struct {
	prefix []byte
	format string
}{
	{[]byte{0xFF, 0xD8}, "jpeg"},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, "png"},
	{[]byte{0x47, 0x49, 0x46}, "gif"},
	{[]byte{0x42, 0x4D}, "bmp"},
}

// DetectFormat inspects the leading bytes of data and returns
// "jpeg", "png", "gif", "bmp" or "unknown". Never fails.
func DetectFormat(data []byte) string {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return sig.format
		}
	}
	return "unknown"
}
