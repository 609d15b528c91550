package image

import (
	"fmt"

	"github.com/golang/glog"
)

// RegionResult is the outcome of checking one region.
type RegionResult struct {
	Region
	Computed byte
	Found    byte
}

// OK reports whether the stored checkbyte matches the computed sum.
func (r RegionResult) OK() bool {
	return r.Computed == r.Found
}

// String implements fmt.Stringer.
func (r RegionResult) String() string {
	return fmt.Sprintf("checksum [0x%x:0x%x] calculated: 0x%02x, found: 0x%02x",
		r.Start, r.Checkbyte-1, r.Computed, r.Found)
}

// Sum returns the 8-bit truncated sum of data.
func Sum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Check computes every region of img without modifying it.
// img must be a full image.
func Check(img Image) []RegionResult {
	regions := Regions()
	results := make([]RegionResult, len(regions))
	for n, r := range regions {
		results[n] = RegionResult{
			Region:   r,
			Computed: Sum(img[r.Start:r.Checkbyte]),
			Found:    img[r.Checkbyte],
		}
	}
	return results
}

// Verify reports whether all checkbytes of img are consistent.
// Images of the wrong length never verify.
func Verify(img Image) bool {
	if CheckLength(img) != nil {
		return false
	}
	for _, res := range Check(img) {
		if glog.V(1) {
			glog.Info(res.String())
		}
		if !res.OK() {
			return false
		}
	}
	return true
}

// Corrected returns a copy of img with every mismatching checkbyte
// overwritten, and the offsets that were rewritten. Regions are fixed in
// order, so the last checkbyte accounts for the earlier corrections.
func Corrected(img Image) (Image, []int, error) {
	if err := CheckLength(img); err != nil {
		return nil, nil, err
	}
	out := img.Clone()
	var fixed []int
	for _, r := range Regions() {
		sum := Sum(out[r.Start:r.Checkbyte])
		if found := out[r.Checkbyte]; found != sum {
			glog.V(1).Infof("correcting checkbyte at 0x%x: 0x%02x -> 0x%02x", r.Checkbyte, found, sum)
			out[r.Checkbyte] = sum
			fixed = append(fixed, r.Checkbyte)
		}
	}
	return out, fixed, nil
}

// ValidateFile checks the image stored in path without modifying it.
func ValidateFile(path string) (bool, error) {
	img, err := Load(path)
	if err != nil {
		return false, err
	}
	if err := CheckLength(img); err != nil {
		return false, err
	}
	valid := true
	for _, res := range Check(img) {
		if !res.OK() {
			glog.Warningf("%s: %s", path, res.String())
			valid = false
		} else if glog.V(1) {
			glog.Info(res.String())
		}
	}
	return valid, nil
}
