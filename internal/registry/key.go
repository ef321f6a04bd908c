package registry

import "fmt"

// IconKey identifies one sub-image format in the output container.
type IconKey struct {
	Width    uint32 // 1 - 256
	Height   uint32 // 1 - 256
	BitDepth uint32 // 1, 2, 4, 8, 24, 32
}

func (k IconKey) String() string {
	return fmt.Sprintf("%dx%dx%d", k.Width, k.Height, k.BitDepth)
}

// canonical holds the fixed weights for the square sizes that older
// Windows versions look for among the first directory entries. They stop at
// the first acceptable match, so 16/32/48 at 32, 8, 4 and 24 bpp go first.
// Newer versions scan the whole directory and don't care.
var canonical = map[uint32]map[uint32]uint32{
	32: {48: 11, 32: 12, 16: 13, 24: 91},
	8:  {48: 21, 32: 22, 16: 23, 24: 92},
	4:  {48: 31, 32: 32, 16: 33, 24: 93},
	24: {48: 41, 32: 42, 16: 43, 24: 94},
}

// Weight returns the sort weight of k, lower comes first.
//
// Non-canonical keys sort by descending bit depth, then by combined size, then
// by height. The fallback can collide with other keys for unusual inputs;
// colliding keys keep their first-insertion order.
func (k IconKey) Weight() uint32 {
	if k.Width == k.Height {
		if sizes, ok := canonical[k.BitDepth]; ok {
			if w, ok := sizes[k.Width]; ok {
				return w
			}
		}
	}
	return ((k.Width + k.Height) << 8) | k.Height | ((32 - k.BitDepth) << 24)
}
