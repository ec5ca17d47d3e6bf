/*
Package record implements a reader for fixed-size binary records made up of
fixed-width fields.

A record format is stated once as a list of fields, each an offset, a length
and a decoder for the bytes in that range. The fields must cover the record
exactly with no gaps or overlaps; a field list that doesn't is a programming
error and causes a panic rather than an error.
*/
package record

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSizeMismatch is matched by any *SizeError
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrInvalidText is matched by any *TextError
	ErrInvalidText = errors.New("invalid text")
	// ErrInvalidDimensions is matched by any *DimensionError
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// SizeError reports a byte slice that doesn't match the fixed size of the
// record being decoded.
type SizeError struct {
	Record   string
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: expected %d bytes, got %d", e.Record, e.Expected, e.Actual)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// TextError reports a text field that isn't valid UTF-8.
type TextError struct {
	Record string
	Offset int
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s: invalid text at byte %d", e.Record, e.Offset)
}

// Is reports whether target is ErrInvalidText.
func (e *TextError) Is(target error) bool {
	return target == ErrInvalidText
}

// DimensionError reports pixel dimensions that a decoder or consumer can't
// handle.
type DimensionError struct {
	Record string
	Width  int
	Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: invalid dimensions %dx%d", e.Record, e.Width, e.Height)
}

// Is reports whether target is ErrInvalidDimensions.
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// FieldError wraps the failure of a single field decoder with the field's
// position within the record.
type FieldError struct {
	Record string
	Field  string
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q at offset %#x: %v", e.Record, e.Field, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CheckSize returns a *SizeError if b is not exactly size bytes long.
func CheckSize(record string, size int, b []byte) error {
	if len(b) != size {
		return &SizeError{
			Record:   record,
			Expected: size,
			Actual:   len(b),
		}
	}
	return nil
}

// Field describes one fixed-width field of a record.
type Field struct {
	Name   string
	Offset int
	Length int
	Decode func([]byte) error
}

// Fields is an ordered list of fields making up a record.
type Fields []Field

// Validate checks the fields cover exactly size bytes with no gaps or
// overlaps, panicking otherwise.
func (fs Fields) Validate(size int) {
	dup := append(fs[:0:0], fs...)
	sort.SliceStable(dup, func(i, j int) bool { return dup[i].Offset < dup[j].Offset })

	var next int
	for _, f := range dup {
		if f.Length <= 0 {
			panic(fmt.Sprintf("record: field %q has length %d", f.Name, f.Length))
		}
		if f.Offset != next {
			panic(fmt.Sprintf("record: field %q at offset %#x, expected %#x", f.Name, f.Offset, next))
		}
		next = f.Offset + f.Length
	}
	if next != size {
		panic(fmt.Sprintf("record: fields cover %d bytes, expected %d", next, size))
	}
}

// Decode checks b is exactly size bytes and then runs each field decoder in
// order against its range of b, stopping at the first failure.
func (fs Fields) Decode(record string, size int, b []byte) error {
	fs.Validate(size)

	if err := CheckSize(record, size, b); err != nil {
		return err
	}

	for _, f := range fs {
		if err := f.Decode(b[f.Offset : f.Offset+f.Length : f.Offset+f.Length]); err != nil {
			return &FieldError{
				Record: record,
				Field:  f.Name,
				Offset: f.Offset,
				Err:    err,
			}
		}
	}

	return nil
}
