package vm

import (
	"testing"

	"blue/value"
)

func TestGlobalsGetDistinguishesAbsentFromNil(t *testing.T) {
	g := NewGlobals()
	in := value.NewInterner()
	name := in.CopyString("x")

	if _, ok := g.Get(name); ok {
		t.Fatalf("Get on an undefined name must report absent")
	}

	g.Set(name, value.Nil())
	v, ok := g.Get(name)
	if !ok {
		t.Fatalf("Get after Set(nil) must report present")
	}
	if !v.IsNil() {
		t.Errorf("stored value should be nil")
	}
}

func TestGlobalsSetReportsWhetherNameWasNew(t *testing.T) {
	g := NewGlobals()
	in := value.NewInterner()
	name := in.CopyString("x")

	if !g.Set(name, value.Number(1)) {
		t.Errorf("first Set should report wasNew=true")
	}
	if g.Set(name, value.Number(2)) {
		t.Errorf("second Set should report wasNew=false")
	}
}

func TestGlobalsDelete(t *testing.T) {
	g := NewGlobals()
	in := value.NewInterner()
	name := in.CopyString("x")

	if g.Delete(name) {
		t.Errorf("Delete on an absent name should report false")
	}
	g.Set(name, value.Number(1))
	if !g.Delete(name) {
		t.Errorf("Delete on a present name should report true")
	}
	if _, ok := g.Get(name); ok {
		t.Errorf("name should be absent after Delete")
	}
}
