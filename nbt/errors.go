package nbt

import "fmt"

// MalformedTagError is returned by Parse when the stream contains a bad
// length prefix, an unknown tag id, or a non-UTF-8 string, and records
// the stream offset at which the problem was detected.
type MalformedTagError struct {
	Offset int
	Msg    string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("nbt: malformed tag at offset %d: %s", e.Offset, e.Msg)
}

func malformed(r *Reader, format string, args ...any) error {
	return &MalformedTagError{Offset: r.Offset(), Msg: fmt.Sprintf(format, args...)}
}
