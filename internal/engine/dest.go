package engine

import "fmt"

// Destination is an in-place write target supplied by the caller. The
// engine never owns it: it only validates the declared shape against
// the broadcast shape and writes elements through SetElem.
type Destination interface {
	// DeclaredShape returns the destination's own declared shape.
	// ok is false when the destination was declared without a shape.
	DeclaredShape() (Shape, bool)

	// DType returns the destination's element type.
	DType() DataType

	// SetElem stores a value at a linear column-major offset within the
	// destination's declared shape.
	SetElem(offset int, v any)
}

// Adoptable is implemented by destinations declared without a shape.
// Adopt fixes the shape (and allocates storage) before any write.
type Adoptable interface {
	Destination
	Adopt(shape Shape) error
}

// Reconcile determines the shape an in-place write should use, given
// the destination's declared shape and the shape combined from the
// operands. Either side may be unknown (ok flag false). Rules, in
// priority order:
//
//  1. declared unknown → adopt the combined shape.
//  2. combined unknown → keep the declared shape.
//  3. shapes equal → use the combined shape.
//  4. otherwise → *DestinationSizeMismatchError carrying both shapes.
//
// Destinations may be declared with partial size information while
// operands always carry a full static shape, which is why rule 1 and
// rule 2 are not symmetric errors.
func Reconcile(declared Shape, declaredKnown bool, combined Shape, combinedKnown bool) (Shape, error) {
	switch {
	case !declaredKnown:
		return combined, nil
	case !combinedKnown:
		return declared, nil
	case declared.Equal(combined):
		return combined, nil
	default:
		return nil, &DestinationSizeMismatchError{Declared: declared, Combined: combined}
	}
}

// DeclaredShape exposes the container as a sized destination.
func (c *Container) DeclaredShape() (Shape, bool) {
	return c.shape, true
}

// Unsized is a destination declared without a shape: storage is
// allocated when an in-place write adopts the broadcast shape.
type Unsized struct {
	dtype DataType
	c     *Container
}

// NewUnsized creates a shapeless destination of the given element type.
func NewUnsized(dtype DataType) *Unsized {
	return &Unsized{dtype: dtype}
}

// DeclaredShape returns the adopted shape, or ok=false before adoption.
func (u *Unsized) DeclaredShape() (Shape, bool) {
	if u.c == nil {
		return nil, false
	}
	return u.c.Shape(), true
}

// DType returns the destination's element type.
func (u *Unsized) DType() DataType {
	return u.dtype
}

// Adopt fixes the destination's shape and allocates its storage.
func (u *Unsized) Adopt(shape Shape) error {
	c, err := NewContainer(shape, u.dtype)
	if err != nil {
		return err
	}
	u.c = c
	return nil
}

// SetElem stores a value at a linear offset. Panics before adoption.
func (u *Unsized) SetElem(offset int, v any) {
	if u.c == nil {
		panic("write to unsized destination before shape adoption")
	}
	u.c.SetElem(offset, v)
}

// Container returns the adopted storage, or nil before adoption.
func (u *Unsized) Container() *Container {
	return u.c
}

// String returns a human-readable description of the destination.
func (u *Unsized) String() string {
	if u.c == nil {
		return fmt.Sprintf("Unsized[%s]", u.dtype)
	}
	return u.c.String()
}
