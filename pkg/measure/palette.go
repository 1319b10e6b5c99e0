package measure

import "image/color"

// palette is the 20 color class palette used for boxes and labels.
var palette = []color.RGBA{
	{0xFF, 0x38, 0x38, 0xff},
	{0xFF, 0x9D, 0x97, 0xff},
	{0xFF, 0x70, 0x1F, 0xff},
	{0xFF, 0xB2, 0x1D, 0xff},
	{0xCF, 0xD2, 0x31, 0xff},
	{0x48, 0xF9, 0x0A, 0xff},
	{0x92, 0xCC, 0x17, 0xff},
	{0x3D, 0xDB, 0x86, 0xff},
	{0x1A, 0x93, 0x34, 0xff},
	{0x00, 0xD4, 0xBB, 0xff},
	{0x2C, 0x99, 0xA8, 0xff},
	{0x00, 0xC2, 0xFF, 0xff},
	{0x34, 0x45, 0x93, 0xff},
	{0x64, 0x73, 0xFF, 0xff},
	{0x00, 0x18, 0xEC, 0xff},
	{0x84, 0x38, 0xFF, 0xff},
	{0x52, 0x00, 0x85, 0xff},
	{0xCB, 0x38, 0xFF, 0xff},
	{0xFF, 0x95, 0xC8, 0xff},
	{0xFF, 0x37, 0xC7, 0xff},
}

// ClassColor returns the palette color for a class id. Ids wrap around the
// palette; negative ids are folded to positive.
func ClassColor(classID int) color.RGBA {
	i := classID % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}
