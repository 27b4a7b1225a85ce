package nbt

import "fmt"

// Kind identifies one of the twelve tag payload types.
type Kind uint8

const (
	End Kind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	ByteArray
	String
	List
	Compound
	IntArray
	LongArray
)

func (k Kind) String() string {
	switch k {
	case End:
		return "End"
	case Byte:
		return "Byte"
	case Short:
		return "Short"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case ByteArray:
		return "ByteArray"
	case String:
		return "String"
	case List:
		return "List"
	case Compound:
		return "Compound"
	case IntArray:
		return "IntArray"
	case LongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Tag is a single node of the tagged binary tree. It holds exactly one of
// its payload fields, selected by Kind; which field is valid is
// determined entirely by Kind, matching the twelve tag classes of the
// on-disk format without needing twelve Go types.
type Tag struct {
	kind Kind
	name string

	byteVal   int8
	shortVal  int16
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	stringVal string

	byteArray []int8
	intArray  []int32
	longArray []int64

	listKind Kind
	list     []*Tag

	compound      []*Tag
	compoundIndex map[string]int
}

func NewByte(name string, v int8) *Tag   { return &Tag{kind: Byte, name: name, byteVal: v} }
func NewShort(name string, v int16) *Tag { return &Tag{kind: Short, name: name, shortVal: v} }
func NewInt(name string, v int32) *Tag   { return &Tag{kind: Int, name: name, intVal: v} }
func NewLong(name string, v int64) *Tag  { return &Tag{kind: Long, name: name, longVal: v} }
func NewFloat(name string, v float32) *Tag {
	return &Tag{kind: Float, name: name, floatVal: v}
}
func NewDouble(name string, v float64) *Tag {
	return &Tag{kind: Double, name: name, doubleVal: v}
}
func NewString(name, v string) *Tag { return &Tag{kind: String, name: name, stringVal: v} }

func NewByteArray(name string, v []int8) *Tag {
	return &Tag{kind: ByteArray, name: name, byteArray: append([]int8(nil), v...)}
}
func NewIntArray(name string, v []int32) *Tag {
	return &Tag{kind: IntArray, name: name, intArray: append([]int32(nil), v...)}
}
func NewLongArray(name string, v []int64) *Tag {
	return &Tag{kind: LongArray, name: name, longArray: append([]int64(nil), v...)}
}

// NewList builds a List tag whose elements are all of elemKind. An empty
// list may carry any elemKind, commonly End.
func NewList(name string, elemKind Kind, elems ...*Tag) *Tag {
	return &Tag{kind: List, name: name, listKind: elemKind, list: append([]*Tag(nil), elems...)}
}

// NewCompound builds a Compound tag from an ordered list of named
// children. Later children with a name already present overwrite the
// earlier child's value but keep its position, matching how Python's
// insertion-ordered dict is used by the reference implementation.
func NewCompound(name string, children ...*Tag) *Tag {
	c := &Tag{kind: Compound, name: name}
	for _, child := range children {
		c.Put(child)
	}
	return c
}

func (t *Tag) Kind() Kind   { return t.kind }
func (t *Tag) Name() string { return t.name }

func (t *Tag) Byte() int8      { return t.byteVal }
func (t *Tag) Short() int16    { return t.shortVal }
func (t *Tag) Int() int32      { return t.intVal }
func (t *Tag) Long() int64     { return t.longVal }
func (t *Tag) Float() float32  { return t.floatVal }
func (t *Tag) Double() float64 { return t.doubleVal }
func (t *Tag) Str() string     { return t.stringVal }

func (t *Tag) ByteArray() []int8 { return t.byteArray }
func (t *Tag) IntArray() []int32 { return t.intArray }
func (t *Tag) LongArray() []int64 { return t.longArray }

// ListKind returns the declared element type of a List tag.
func (t *Tag) ListKind() Kind { return t.listKind }

// List returns the ordered elements of a List tag. Elements carry no name.
func (t *Tag) List() []*Tag { return t.list }

// Append adds an element to a List tag.
func (t *Tag) Append(elem *Tag) {
	t.list = append(t.list, elem)
}

// Children returns a Compound tag's children in insertion order.
func (t *Tag) Children() []*Tag { return t.compound }

// Put inserts or replaces a named child of a Compound tag, keeping the
// child's existing position when its name is already present.
func (t *Tag) Put(child *Tag) {
	if t.compoundIndex == nil {
		t.compoundIndex = make(map[string]int, len(t.compound))
	}
	if i, ok := t.compoundIndex[child.name]; ok {
		t.compound[i] = child
		return
	}
	t.compoundIndex[child.name] = len(t.compound)
	t.compound = append(t.compound, child)
}

// Get looks up a named child of a Compound tag.
func (t *Tag) Get(name string) (*Tag, bool) {
	if t.compoundIndex == nil {
		return nil, false
	}
	i, ok := t.compoundIndex[name]
	if !ok {
		return nil, false
	}
	return t.compound[i], true
}

// Has reports whether a Compound tag has a child with the given name.
func (t *Tag) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// MustGet is Get but panics if name is absent; for use where the caller
// already knows the child exists.
func (t *Tag) MustGet(name string) *Tag {
	c, ok := t.Get(name)
	if !ok {
		panic(fmt.Sprintf("nbt: compound %q has no child %q", t.name, name))
	}
	return c
}
