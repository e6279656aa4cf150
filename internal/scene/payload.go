package scene

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Payload accessors tolerate the loose typing that JSON and YAML decoding
// produce (float64 vs int, []interface{} vs []float64).

func GetFloatFromInterface(val interface{}) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case map[string]interface{}:
		if value, ok := v["value"]; ok {
			return GetFloatFromInterface(value)
		}
	}
	return 0
}

func GetFloatSlice(val interface{}) []float64 {
	switch v := val.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			out = append(out, GetFloatFromInterface(item))
		}
		return out
	}
	return nil
}

func GetStringSlice(val interface{}) []string {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

func (o *Object) PayloadString(key string) string {
	v, ok := o.Payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (o *Object) PayloadFloat(key string, fallback float64) float64 {
	v, ok := o.Payload[key]
	if !ok {
		return fallback
	}
	return GetFloatFromInterface(v)
}

func (o *Object) PayloadFloats(key string) []float64 {
	return GetFloatSlice(o.Payload[key])
}

func (o *Object) PayloadStrings(key string) []string {
	return GetStringSlice(o.Payload[key])
}

// PayloadKeys returns the payload keys in sorted order.
func (o *Object) PayloadKeys() []string {
	keys := make([]string, 0, len(o.Payload))
	for k := range o.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
