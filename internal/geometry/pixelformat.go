package geometry

import "fmt"

// PixelFormat identifies an image data layout as a DRM FourCC code plus a
// 64-bit layout modifier. The numeric values form a wire contract with the
// pipeline and must not be renumbered.
type PixelFormat struct {
	FourCC   uint32
	Modifier uint64
}

// FourCC builds a fourcc code from its four character bytes.
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Well-known pixel formats. The set is open ended; pipelines may report
// formats not listed here.
var (
	PixelFormatMJPEG   = PixelFormat{FourCC: FourCC('M', 'J', 'P', 'G')}
	PixelFormatYUYV    = PixelFormat{FourCC: FourCC('Y', 'U', 'Y', 'V')}
	PixelFormatNV12    = PixelFormat{FourCC: FourCC('N', 'V', '1', '2')}
	PixelFormatRGB888  = PixelFormat{FourCC: FourCC('R', 'G', '2', '4')}
	PixelFormatBGR888  = PixelFormat{FourCC: FourCC('B', 'G', '2', '4')}
	PixelFormatSRGGB10 = PixelFormat{FourCC: FourCC('R', 'G', '1', '0')}
)

// IsValid reports whether the format carries a fourcc code at all.
func (f PixelFormat) IsValid() bool {
	return f.FourCC != 0
}

func (f PixelFormat) String() string {
	if !f.IsValid() {
		return "<INVALID>"
	}
	text := make([]byte, 0, 4)
	for i := 0; i < 4; i++ {
		ch := byte(f.FourCC >> (8 * i))
		if ch < 0x20 || ch > 0x7e {
			return fmt.Sprintf("<0x%08x-0x%016x>", f.FourCC, f.Modifier)
		}
		text = append(text, ch)
	}
	if f.Modifier != 0 {
		return fmt.Sprintf("%s/0x%x", text, f.Modifier)
	}
	return string(text)
}
