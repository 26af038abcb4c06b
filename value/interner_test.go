package value

import "testing"

func TestCopyStringCanonicalizesByContent(t *testing.T) {
	in := NewInterner()
	a := in.CopyString("hello")
	b := in.CopyString("hello")
	if a != b {
		t.Fatalf("two CopyString calls with equal content must return the same object")
	}
	if a.Hash != FNVHash("hello") {
		t.Errorf("Hash = %d, want cached FNV-1a hash", a.Hash)
	}
}

func TestCopyStringDistinctContentDistinctObjects(t *testing.T) {
	in := NewInterner()
	a := in.CopyString("hello")
	b := in.CopyString("world")
	if a == b {
		t.Fatalf("distinct contents must not be interned to the same object")
	}
}

func TestTakeStringInternsLikeCopyString(t *testing.T) {
	in := NewInterner()
	a := in.CopyString("ab")
	b := in.TakeString("a" + "b")
	if a != b {
		t.Errorf("TakeString must return the canonical object for already-interned content")
	}
}

func TestReleaseClearsTheObjectList(t *testing.T) {
	in := NewInterner()
	in.CopyString("one")
	in.CopyString("two")
	if in.objects == nil {
		t.Fatalf("expected tracked objects before Release")
	}
	in.Release()
	if in.objects != nil {
		t.Errorf("Release must clear the intrusive object list")
	}
	// the interner remains usable after teardown
	s := in.CopyString("three")
	if s.Bytes != "three" {
		t.Errorf("interner should still work after Release")
	}
}
