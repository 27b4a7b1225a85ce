package nbt

// Clone produces a structurally independent deep copy of tag: mutating
// the clone, or any slice/compound nested inside it, never affects tag.
func Clone(tag *Tag) *Tag {
	clone := &Tag{
		kind:      tag.kind,
		name:      tag.name,
		byteVal:   tag.byteVal,
		shortVal:  tag.shortVal,
		intVal:    tag.intVal,
		longVal:   tag.longVal,
		floatVal:  tag.floatVal,
		doubleVal: tag.doubleVal,
		stringVal: tag.stringVal,
		listKind:  tag.listKind,
	}
	if tag.byteArray != nil {
		clone.byteArray = append([]int8(nil), tag.byteArray...)
	}
	if tag.intArray != nil {
		clone.intArray = append([]int32(nil), tag.intArray...)
	}
	if tag.longArray != nil {
		clone.longArray = append([]int64(nil), tag.longArray...)
	}
	if tag.list != nil {
		clone.list = make([]*Tag, len(tag.list))
		for i, elem := range tag.list {
			clone.list[i] = Clone(elem)
		}
	}
	if tag.compound != nil {
		clone.compound = make([]*Tag, len(tag.compound))
		clone.compoundIndex = make(map[string]int, len(tag.compoundIndex))
		for i, child := range tag.compound {
			clone.compound[i] = Clone(child)
			clone.compoundIndex[child.name] = i
		}
	}
	return clone
}
