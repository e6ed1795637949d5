package signature

import "testing"

func TestOf_Descriptors(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{Of[bool](), "Z"},
		{Of[int8](), "B"},
		{Of[uint8](), "C"}, // scalar byte maps to char, matching the JNI target
		{Of[int16](), "S"},
		{Of[int32](), "I"},
		{Of[int64](), "J"},
		{Of[float32](), "F"},
		{Of[float64](), "D"},
		{Of[string](), "Ljava/lang/String;"},
		{Of[[]byte](), "[B"},
		{Of[[]float32](), "[F"},
		{Of[[]string](), "[Ljava/lang/String;"},
		{Of[map[string]string](), "Ljava/util/HashMap;"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("descriptor = %q, want %q", c.got, c.want)
		}
	}
}

func TestOf_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Of[[]string]() != Of[[]string]() {
			t.Fatal("descriptor derivation not deterministic")
		}
	}
	if Method(Of[int32](), Of[string]()) != Method(Of[int32](), Of[string]()) {
		t.Fatal("signature derivation not deterministic")
	}
}

func TestMethod(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{Method(Void), "()V"},
		{Method(Int, Int, Int), "(II)I"},
		{Method(Of[string](), Of[string]()), "(Ljava/lang/String;)Ljava/lang/String;"},
		{Method(Object, String, ByteArray), "(Ljava/lang/String;[B)Ljava/lang/Object;"},
		{Method(Of[int32](), Of[[]string](), Of[map[string]string]()), "([Ljava/lang/String;Ljava/util/HashMap;)I"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("Method = %q, want %q", c.got, c.want)
		}
	}
}

func TestStructuralContainers(t *testing.T) {
	// Container descriptors are structural, not a generic array placeholder.
	if Of[[]string]() != "["+Of[string]() {
		t.Error("list-of-string descriptor is not array-of-string")
	}
	if Of[[]byte]() == Of[[]float32]() {
		t.Error("distinct element types must yield distinct array descriptors")
	}
}
