package parse

import (
	"fmt"
	"reflect"
)

// coerce the given value to the given type
// optionally creating new slices of the right type
func coerce(in reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !in.IsValid() {
		return reflect.Zero(t), nil
	}
	if in.Kind() == reflect.Interface {
		if in.IsNil() {
			return reflect.Zero(t), nil
		}
		in = in.Elem()
	}
	if in.Type().AssignableTo(t) {
		return in, nil
	}
	if t.Kind() == reflect.Slice && in.Kind() == reflect.Slice {
		return coerceSlice(in, t)
	}
	if !in.CanConvert(t) {
		return in, fmt.Errorf("can't convert %v to %v", in.Type(), t)
	}
	return in.Convert(t), nil
}

func coerceSlice(in reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.MakeSlice(t, in.Len(), in.Len())
	for i := 0; i < in.Len(); i++ {
		v, err := coerce(in.Index(i), t.Elem())
		if err != nil {
			return out, fmt.Errorf("[%d]: %w", i, err)
		}
		out.Index(i).Set(v)
	}
	return out, nil
}
