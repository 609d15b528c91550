package image

import "github.com/golang/glog"

// Offsets and values of the freeband modification.
const (
	FreebandModOffset      = 10
	FreebandHardwareOffset = 6
	FreebandEnabled        = 0xe8
	FreebandStock          = 0xe0
)

// Freeband returns a copy of img with RX and TX outside of the amateur
// bands enabled. modded tells whether the radio hardware itself has been
// modified; otherwise the hardware byte is only flipped away from the
// modified value.
// Checkbytes are not updated, callers send the result through Corrected.
func Freeband(img Image, modded bool) Image {
	out := img.Clone()
	modByte, hwByte := out[FreebandModOffset], out[FreebandHardwareOffset]

	hwSetting := hwByte
	if modded {
		hwSetting = FreebandEnabled
	} else if hwByte == FreebandEnabled {
		hwSetting = FreebandStock
	}

	if modByte == FreebandEnabled {
		glog.V(1).Info("image already has mod enabled")
	} else {
		glog.V(1).Infof("enabling mod %02x from %02x", FreebandEnabled, modByte)
		out[FreebandModOffset] = FreebandEnabled
	}
	if hwByte == hwSetting {
		glog.V(1).Info("image hardware byte is already correct")
	} else {
		glog.V(1).Infof("changing modded byte %02x to %02x", hwByte, hwSetting)
		out[FreebandHardwareOffset] = hwSetting
	}
	return out
}
