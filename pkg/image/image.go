package image

// Layout of the clone image.
const (
	// Size is the length of a clone image in bytes.
	Size = 16211
	// RegionSpan is the number of bytes covered by the partial checkbytes.
	RegionSpan = 127
)

// CheckbyteOffsets are the offsets of the checkbytes, in the order they
// must be computed. The last one is also the final index of the image.
var CheckbyteOffsets = [...]int{0x611, 0x691, 0x3f52}

// Segments are the sizes of the transfer units exchanged with the radio.
var Segments = [...]int{10, 8, Size - 10 - 8}

// Image is a clone image.
type Image []byte

// Clone returns a copy of the image.
func (img Image) Clone() Image {
	c := make(Image, len(img))
	copy(c, img)
	return c
}

// Region describes the byte range covered by one checkbyte.
type Region struct {
	// Start is the first covered offset.
	Start int
	// Checkbyte is the offset of the checkbyte, which is one past the
	// last covered offset.
	Checkbyte int
}

// Regions returns the checksum regions in computation order.
func Regions() []Region {
	regions := make([]Region, len(CheckbyteOffsets))
	for n, off := range CheckbyteOffsets {
		if n == len(CheckbyteOffsets)-1 {
			regions[n] = Region{Start: 0, Checkbyte: off}
		} else {
			regions[n] = Region{Start: off - RegionSpan, Checkbyte: off}
		}
	}
	return regions
}

// SegmentBounds returns the [start, end) offsets of the n-th segment.
func SegmentBounds(n int) (start, end int) {
	for i := 0; i < n; i++ {
		start += Segments[i]
	}
	return start, start + Segments[n]
}
