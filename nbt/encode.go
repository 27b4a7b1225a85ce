package nbt

// Serialize writes tag as a named root tag: id, name, payload. Compounds
// emit their children in insertion order terminated by a single End byte.
func Serialize(tag *Tag, w *Writer) {
	w.WriteUint8(uint8(tag.kind))
	w.WriteString(tag.name)
	serializePayload(tag, w)
}

func serializePayload(tag *Tag, w *Writer) {
	switch tag.kind {
	case End:
	case Byte:
		w.WriteInt8(tag.byteVal)
	case Short:
		w.WriteInt16(tag.shortVal)
	case Int:
		w.WriteInt32(tag.intVal)
	case Long:
		w.WriteInt64(tag.longVal)
	case Float:
		w.WriteFloat32(tag.floatVal)
	case Double:
		w.WriteFloat64(tag.doubleVal)
	case String:
		w.WriteString(tag.stringVal)
	case ByteArray:
		w.WriteInt32(int32(len(tag.byteArray)))
		for _, v := range tag.byteArray {
			w.WriteInt8(v)
		}
	case IntArray:
		w.WriteInt32(int32(len(tag.intArray)))
		for _, v := range tag.intArray {
			w.WriteInt32(v)
		}
	case LongArray:
		w.WriteInt32(int32(len(tag.longArray)))
		for _, v := range tag.longArray {
			w.WriteInt64(v)
		}
	case List:
		w.WriteUint8(uint8(tag.listKind))
		w.WriteInt32(int32(len(tag.list)))
		for _, elem := range tag.list {
			serializePayload(elem, w)
		}
	case Compound:
		for _, child := range tag.compound {
			w.WriteUint8(uint8(child.kind))
			w.WriteString(child.name)
			serializePayload(child, w)
		}
		w.WriteUint8(uint8(End))
	}
}
