package nbt

// Equal reports whether a and b are structurally identical. Names and
// payloads must match recursively. List and array element order matters;
// a Compound's children are compared as a name-to-child mapping, so
// reordering a compound's children (without changing any of them) does
// not affect equality.
func Equal(a, b *Tag) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.name != b.name {
		return false
	}
	switch a.kind {
	case End:
		return true
	case Byte:
		return a.byteVal == b.byteVal
	case Short:
		return a.shortVal == b.shortVal
	case Int:
		return a.intVal == b.intVal
	case Long:
		return a.longVal == b.longVal
	case Float:
		return a.floatVal == b.floatVal
	case Double:
		return a.doubleVal == b.doubleVal
	case String:
		return a.stringVal == b.stringVal
	case ByteArray:
		return equalInt8s(a.byteArray, b.byteArray)
	case IntArray:
		return equalInt32s(a.intArray, b.intArray)
	case LongArray:
		return equalInt64s(a.longArray, b.longArray)
	case List:
		if len(a.list) != len(b.list) {
			return false
		}
		if len(a.list) != 0 && a.listKind != b.listKind {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case Compound:
		if len(a.compound) != len(b.compound) {
			return false
		}
		for _, child := range a.compound {
			other, ok := b.Get(child.name)
			if !ok || !Equal(child, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalInt8s(a, b []int8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInt32s(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
