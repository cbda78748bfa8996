package encoding

import (
	"encoding/binary"
)

// Split32 uint32 to two uint16
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// Split16 uint16 to two uint8
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 two uint8 to uint16
func Merge8(a, b uint8) uint16 {
	return (uint16(a) << 8) + uint16(b)
}

// Pack4 merges four bytes into a uint32 where `a` is the least significant
// byte & `d` the most significant.
//
//	a + b*256 + c*65536 + d*16777216
func Pack4(a, b, c, d uint8) uint32 {
	return Merge16(Merge8(d, c), Merge8(b, a))
}

// Unpack4 is the inverse of Pack4
func Unpack4(in uint32) (uint8, uint8, uint8, uint8) {
	hi, lo := Split32(in)
	d, c := Split16(hi)
	b, a := Split16(lo)
	return a, b, c, d
}

// PutPixel writes a packed value into a 4 channel pixel (eg. Pix[i:i+4] of
// an image.NRGBA) so the channels read a, b, c, d.
func PutPixel(pix []byte, in uint32) {
	binary.LittleEndian.PutUint32(pix[:4], in)
}

// Pixel reads a packed value from a 4 channel pixel, see PutPixel
func Pixel(pix []byte) uint32 {
	return binary.LittleEndian.Uint32(pix[:4])
}
