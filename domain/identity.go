package domain

import (
	"cosmokit/errors"
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Identity is the canonical key of an Entity, built from its hash fields only.
// It is comparable and can be used directly as a map key.
type Identity string

// Hash returns the 64-bit digest of the identity.
func (i Identity) Hash() uint64 {
	return xxhash.Sum64String(string(i))
}

func (i Identity) String() string {
	return string(i)
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// encoder writes a canonical, type-width independent representation of a value.
// The same semantic value always produces the same bytes, whether it comes from a
// live struct field or from a loose map of candidate values.
type encoder struct {
	b strings.Builder
}

func (e *encoder) String() string {
	return e.b.String()
}

func (e *encoder) field(name string, v reflect.Value) error {
	e.b.WriteString(name)
	e.b.WriteByte('=')
	if err := e.value(v); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	e.b.WriteByte(';')
	return nil
}

func (e *encoder) value(v reflect.Value) error {
	if !v.IsValid() {
		e.b.WriteString("nil")
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			e.b.WriteString("nil")
			return nil
		}
	}
	if v.CanInterface() && v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		e.b.WriteString("t:")
		e.b.WriteString(strconv.Quote(string(text)))
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return e.value(v.Elem())
	case reflect.Bool:
		e.b.WriteString("b:")
		e.b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.b.WriteString("n:")
		e.b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.b.WriteString("n:")
		e.b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		e.b.WriteString("f:")
		e.b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		e.b.WriteString("c:")
		e.b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		e.b.WriteString("s:")
		e.b.WriteString(strconv.Quote(v.String()))
	case reflect.Array, reflect.Slice:
		e.b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if err := e.value(v.Index(i)); err != nil {
				return err
			}
			e.b.WriteByte(',')
		}
		e.b.WriteByte(']')
	case reflect.Map:
		return e.mapValue(v)
	case reflect.Struct:
		e.b.WriteByte('{')
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if err := e.field(t.Field(i).Name, v.Field(i)); err != nil {
				return err
			}
		}
		e.b.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s cannot be part of an identity", errors.ErrTypeMismatch, v.Type())
	}
	return nil
}

// mapValue sorts entries by their encoded key so iteration order never leaks in.
func (e *encoder) mapValue(v reflect.Value) error {
	type entry struct{ key, value string }
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var k, val encoder
		if err := k.value(iter.Key()); err != nil {
			return err
		}
		if err := val.value(iter.Value()); err != nil {
			return err
		}
		entries = append(entries, entry{k.String(), val.String()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	e.b.WriteByte('<')
	for _, en := range entries {
		e.b.WriteString(en.key)
		e.b.WriteByte(':')
		e.b.WriteString(en.value)
		e.b.WriteByte(',')
	}
	e.b.WriteByte('>')
	return nil
}

// indirect follows pointers down to the underlying struct.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

// FieldValue reads an exported field by name from a struct or a pointer to one.
func FieldValue(x any, name string) (any, bool) {
	v, ok := indirect(reflect.ValueOf(x))
	if !ok {
		return nil, false
	}
	f := v.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

// HashValue digests every field of a value, type included, so two values of the
// same type with identical fields hash equally.
func HashValue(x any) (uint64, error) {
	if x == nil {
		return 0, fmt.Errorf("%w: cannot hash nil", errors.ErrTypeMismatch)
	}
	var e encoder
	e.b.WriteString(reflect.TypeOf(x).String())
	e.b.WriteByte('|')
	if err := e.value(reflect.ValueOf(x)); err != nil {
		return 0, err
	}
	return xxhash.Sum64String(e.String()), nil
}

// SameValue reports structural equality of two values of the same type.
func SameValue(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// SameFieldValue compares a single value the way identities do: int(5) and
// int64(5) are the same, two uuid.UUID are compared by their text.
func SameFieldValue(a, b any) bool {
	var ea, eb encoder
	if ea.value(reflect.ValueOf(a)) != nil || eb.value(reflect.ValueOf(b)) != nil {
		return false
	}
	return ea.String() == eb.String()
}
