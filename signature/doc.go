// Package signature derives JVM method and field signatures from native Go
// types.
//
// Each supported type has exactly one descriptor, resolved through a closed
// generic constraint so that an unregistered type is a compile-time error
// rather than a runtime fallback:
//
//	signature.Of[int32]()            // "I"
//	signature.Of[[]string]()         // "[Ljava/lang/String;"
//	signature.Method(signature.Int,
//	    signature.String, signature.ByteArray) // "(Ljava/lang/String;[B)I"
//
// Derivation is deterministic and pure; descriptors are package constants.
package signature
