package signature

import "strings"

// JVM type descriptors for every native type in the conversion registry.
const (
	Boolean = "Z"
	Byte    = "B"
	Char    = "C"
	Short   = "S"
	Int     = "I"
	Long    = "J"
	Float   = "F"
	Double  = "D"
	Void    = "V"

	String      = "Ljava/lang/String;"
	Object      = "Ljava/lang/Object;"
	HashMap     = "Ljava/util/HashMap;"
	ByteArray   = "[B"
	FloatArray  = "[F"
	StringArray = "[" + String
)

// Type is the closed set of native value types the bridge converts. Types
// outside this set do not instantiate the generic API: there is no default
// case and no fallback to an unsafe numeric cast.
//
// Scalar uint8 maps to the JVM char descriptor while []byte maps to a byte
// array; scalar bytes use int8. This mirrors the JNI target exactly.
type Type interface {
	bool | int8 | uint8 | int16 | int32 | int64 | float32 | float64 |
		string | []byte | []float32 | []string | map[string]string
}

// Of returns the descriptor for T. The result is a constant per type and
// deriving it twice yields byte-identical strings.
func Of[T Type]() string {
	var v T
	switch any(v).(type) {
	case bool:
		return Boolean
	case int8:
		return Byte
	case uint8:
		return Char
	case int16:
		return Short
	case int32:
		return Int
	case int64:
		return Long
	case float32:
		return Float
	case float64:
		return Double
	case string:
		return String
	case []byte:
		return ByteArray
	case []float32:
		return FloatArray
	case []string:
		return StringArray
	case map[string]string:
		return HashMap
	}
	// The Type constraint is closed; no other instantiation exists.
	panic("signature: unregistered type")
}

// Method assembles a full method signature from a return descriptor and
// parameter descriptors, in declaration order.
func Method(ret string, params ...string) string {
	var b strings.Builder
	b.Grow(2 + len(ret) + 8*len(params))
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(p)
	}
	b.WriteByte(')')
	b.WriteString(ret)
	return b.String()
}
