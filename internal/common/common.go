package common

import "reflect"

// IsIntegerKind reports whether k is a fixed-size integer kind.
func IsIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return true
	default:
		return false
	}
}

// IsSignedKind reports whether k is a signed integer kind.
func IsSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return true
	default:
		return false
	}
}

// IsPackableKind reports whether values of kind k can be stored as a run of
// bits: integers and bools.
func IsPackableKind(k reflect.Kind) bool {
	return k == reflect.Bool || IsIntegerKind(k)
}

// KindBits returns the native bit width for packable kinds, -1 otherwise.
func KindBits(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return 64
	default:
		return -1
	}
}
