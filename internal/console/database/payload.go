package database

import (
	"encoding/json"
	"reflect"

	"golang.org/x/text/encoding/charmap"
)

var marshalerType = reflect.TypeFor[json.Marshaler]()

// encodePayload marshals an event payload to JSON. Payload strings are raw
// 8-bit server text, so they are decoded as Latin-1 first; json.Marshal
// would otherwise replace every high byte with U+FFFD.
func encodePayload(data any) ([]byte, error) {
	return json.Marshal(widenValue(reflect.ValueOf(data)).Interface())
}

// widenValue returns a copy of v with every reachable exported string
// decoded from Latin-1. Values with their own MarshalJSON are left alone.
func widenValue(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.Type().Implements(marshalerType) {
		return v
	}

	switch v.Kind() {
	case reflect.String:
		wide, err := charmap.ISO8859_1.NewDecoder().String(v.String())
		if err != nil {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.SetString(wide)
		return out

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(widenValue(v.Elem()))
		return out

	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(widenValue(v.Elem()))
		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := range out.NumField() {
			if f := out.Field(i); f.CanSet() {
				f.Set(widenValue(v.Field(i)))
			}
		}
		return out

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(widenValue(v.Index(i)))
		}
		return out
	}
	return v
}
