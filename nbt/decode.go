package nbt

// Parse reads a single named tag from the root of the stream: tag id,
// name, then payload. Nested compounds recurse through parseNamed;
// nested lists recurse through parsePayload for their unnamed elements.
func Parse(r *Reader) (*Tag, error) {
	return parseNamed(r)
}

func parseNamed(r *Reader) (*Tag, error) {
	idByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	kind := Kind(idByte)
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	tag, err := parsePayload(r, kind)
	if err != nil {
		return nil, err
	}
	tag.name = name
	return tag, nil
}

// parsePayload reads the payload for kind, producing an unnamed tag
// (name is left empty; callers that need a name set it themselves).
func parsePayload(r *Reader, kind Kind) (*Tag, error) {
	switch kind {
	case End:
		return &Tag{kind: End}, nil
	case Byte:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Byte, byteVal: v}, nil
	case Short:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Short, shortVal: v}, nil
	case Int:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Int, intVal: v}, nil
	case Long:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Long, longVal: v}, nil
	case Float:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Float, floatVal: v}, nil
	case Double:
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: Double, doubleVal: v}, nil
	case String:
		v, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return &Tag{kind: String, stringVal: v}, nil
	case ByteArray:
		return parseByteArray(r)
	case IntArray:
		return parseIntArray(r)
	case LongArray:
		return parseLongArray(r)
	case List:
		return parseList(r)
	case Compound:
		return parseCompound(r)
	default:
		return nil, malformed(r, "unknown tag id %d", uint8(kind))
	}
}

func parseByteArray(r *Reader) (*Tag, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformed(r, "negative byte array length %d", n)
	}
	vals := make([]int8, n)
	for i := range vals {
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return &Tag{kind: ByteArray, byteArray: vals}, nil
}

func parseIntArray(r *Reader) (*Tag, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformed(r, "negative int array length %d", n)
	}
	vals := make([]int32, n)
	for i := range vals {
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return &Tag{kind: IntArray, intArray: vals}, nil
}

func parseLongArray(r *Reader) (*Tag, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformed(r, "negative long array length %d", n)
	}
	vals := make([]int64, n)
	for i := range vals {
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return &Tag{kind: LongArray, longArray: vals}, nil
}

func parseList(r *Reader) (*Tag, error) {
	subIDByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	subKind := Kind(subIDByte)
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformed(r, "negative list length %d", n)
	}
	elems := make([]*Tag, n)
	for i := range elems {
		elem, err := parsePayload(r, subKind)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return &Tag{kind: List, listKind: subKind, list: elems}, nil
}

func parseCompound(r *Reader) (*Tag, error) {
	c := &Tag{kind: Compound}
	for {
		peeked, err := r.Peek()
		if err != nil {
			return nil, err
		}
		if Kind(peeked) == End {
			if _, err := r.Read(1); err != nil {
				return nil, err
			}
			return c, nil
		}
		child, err := parseNamed(r)
		if err != nil {
			return nil, err
		}
		c.Put(child)
	}
}
