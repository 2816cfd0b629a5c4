package geom

// Unsigned is the set of element types usable for linear indexing.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Number is any integer or floating point element type.
type Number interface {
	Unsigned | ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Coord is a position. X grows to the right, Y grows downward.
type Coord[T Number] struct {
	X, Y T
}

// C is a shorthand for building a Coord.
func C[T Number](x, y T) Coord[T] {
	return Coord[T]{X: x, Y: y}
}

// Size is a width/height extent.
type Size[T Number] struct {
	Width, Height T
}

// S is a shorthand for building a Size.
func S[T Number](width, height T) Size[T] {
	return Size[T]{Width: width, Height: height}
}

// Area multiplies width by height in T. Callers must keep the product
// representable in T; use Area64 for buffer capacities.
func (s Size[T]) Area() T {
	return s.Width * s.Height
}

// Area64 returns width*height widened to 64 bits so that a 32-bit size
// cannot truncate.
func Area64[T Unsigned](s Size[T]) uint64 {
	return uint64(s.Width) * uint64(s.Height)
}

// Encode maps c to a row-major offset: y*rowWidth + x.
// rowWidth must be > 0. An x >= rowWidth lands in the next row's slots;
// that is not detected here.
func Encode[T Unsigned](c Coord[T], rowWidth int) int {
	return int(c.Y)*rowWidth + int(c.X)
}

// Decode reverses Encode for the same rowWidth.
func Decode[T Unsigned](index, rowWidth int) Coord[T] {
	return Coord[T]{
		X: T(index % rowWidth),
		Y: T(index / rowWidth),
	}
}
