package memo

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Keyer lets a type supply its own stable key fragment. The fragment is
// combined with the dynamic type name, so two types never share a slot.
type Keyer interface {
	MemoKey() string
}

// KeyFunc builds a cache key from call arguments.
type KeyFunc func(args ...any) (string, error)

var (
	keyerType         = reflect.TypeOf((*Keyer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Key encodes args into a deterministic, collision-free cache key.
//
// Accepted values: nil, bool, strings, every integer kind, finite floats and
// complex numbers, []byte, slices and arrays of accepted values, maps keyed by
// strings, Keyer and encoding.TextMarshaler implementations, and named types
// over any of those. Each value is tagged with its kind class, so 1, 1.0 and
// "1" produce different keys while int(1) and int64(1) share one. Nil slices
// and maps encode like nil, never like their empty forms. Keyer and
// TextMarshaler values are tagged with their import-path qualified type.
//
// Funcs, channels, pointers, structs, NaN and infinite floats, and nesting
// deeper than 32 levels (which includes self-referencing []any values) are
// rejected with ErrInvalidArgument.
// @group Keys
//
// Example: build a key
//
//	key, err := memo.Key("user", 42, []string{"a", "b"})
//	fmt.Println(key, err) // (s"user",i42,[s"a",s"b"]) <nil>
func Key(args ...any) (string, error) {
	return encodeKey(defaultMaxKeyDepth, args)
}

func keyFuncWithDepth(depth int) KeyFunc {
	return func(args ...any) (string, error) {
		return encodeKey(depth, args)
	}
}

func encodeKey(maxDepth int, args []any) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeKeyValue(&b, reflect.ValueOf(arg), 0, maxDepth); err != nil {
			return "", fmt.Errorf("%w: argument %d: %v", ErrInvalidArgument, i, err)
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}

func writeKeyValue(b *strings.Builder, v reflect.Value, depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nesting deeper than %d levels (cyclic value?)", maxDepth)
	}
	if !v.IsValid() {
		b.WriteByte('n')
		return nil
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			b.WriteByte('n')
			return nil
		}
		return writeKeyValue(b, v.Elem(), depth, maxDepth)
	}

	t := v.Type()
	if t.Implements(keyerType) && v.CanInterface() {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			b.WriteByte('n')
			return nil
		}
		b.WriteByte('k')
		b.WriteString(strconv.Quote(typeName(t)))
		b.WriteString(strconv.Quote(v.Interface().(Keyer).MemoKey()))
		return nil
	}
	if t.Implements(textMarshalerType) && v.CanInterface() && v.Kind() != reflect.Pointer {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return fmt.Errorf("marshal %s: %w", t, err)
		}
		b.WriteByte('m')
		b.WriteString(strconv.Quote(typeName(t)))
		b.WriteString(strconv.Quote(string(text)))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			b.WriteString("b1")
		} else {
			b.WriteString("b0")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteByte('i')
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteByte('i')
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite float %v", f)
		}
		b.WriteByte('d')
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		re, im := real(c), imag(c)
		if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
			return fmt.Errorf("non-finite complex %v", c)
		}
		b.WriteString("c(")
		b.WriteString(strconv.FormatFloat(re, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(im, 'g', -1, 64))
		b.WriteByte(')')
	case reflect.String:
		b.WriteByte('s')
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteByte('n')
			return nil
		}
		if v.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			b.WriteByte('x')
			b.WriteString(hex.EncodeToString(v.Bytes()))
			return nil
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeKeyValue(b, v.Index(i), depth+1, maxDepth); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("map key type %s is not a string", t.Key())
		}
		if v.IsNil() {
			b.WriteByte('n')
			return nil
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k.String()))
			b.WriteByte(':')
			if err := writeKeyValue(b, v.MapIndex(k), depth+1, maxDepth); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type %s", t)
	}
	return nil
}

// typeName qualifies named types by import path, so same-named types from
// different packages never share a key.
func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + typeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
