package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var floatRangeType = reflect.TypeOf([2]float64{})

// FloatRangeHookFunc returns a hook that decodes "low,high" strings
// into [2]float64 values.
func FloatRangeHookFunc() mapstructure.DecodeHookFunc {
	return floatRangeHookFunc
}

func floatRangeHookFunc(f, t reflect.Type, data interface{}) (interface{}, error) {
	if t != floatRangeType || f.Kind() != reflect.String {
		return data, nil
	}

	parts := strings.Split(data.(string), ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected two comma separated numbers, got %q", data)
	}
	var r [2]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

// IntegralHookFunc returns a hook that refuses to decode a float with
// a fractional part into an integer field, which mapstructure would
// otherwise truncate.
func IntegralHookFunc() mapstructure.DecodeHookFunc {
	return integralHookFunc
}

func integralHookFunc(f, t reflect.Type, data interface{}) (interface{}, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
		return data, nil
	}

	v := reflect.ValueOf(data).Float()
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, fmt.Errorf("%v is not an integer", data)
	}
	return data, nil
}

// Decode decodes a loosely typed parameter map into the struct pointed
// to by out. Keys without a matching field are an error. String values
// are converted to the field type, so values taken from the command
// line can be passed through unchanged. Floats are only accepted for
// integer fields when they hold a whole number.
func Decode(input map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(FloatRangeHookFunc(), IntegralHookFunc()),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
