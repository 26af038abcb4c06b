package value

// Interner canonicalizes string objects by content so that two equal
// string contents reachable from the VM are always the same object,
// making string equality a pointer comparison. It also owns the intrusive
// list of every heap object allocated through it, walked on Release so the
// VM can account for and drop its whole heap at teardown.
type Interner struct {
	strings map[string]*ObjString
	objects Object
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{strings: make(map[string]*ObjString)}
}

func (in *Interner) track(o Object) {
	o.SetNext(in.objects)
	in.objects = o
}

// CopyString returns the canonical ObjString for bytes, allocating and
// interning a new one on first sight.
func (in *Interner) CopyString(bytes string) *ObjString {
	if existing, ok := in.strings[bytes]; ok {
		return existing
	}
	s := &ObjString{Bytes: bytes, Hash: FNVHash(bytes)}
	in.strings[bytes] = s
	in.track(s)
	return s
}

// TakeString interns bytes the same way CopyString does. In the source
// language this VM is modeled on, TakeString skips a defensive copy because
// the caller already owns a freshly allocated buffer (e.g. the result of
// string concatenation); in Go the distinction collapses since the runtime
// owns all string storage, but the method is kept so callers can express
// that intent the way the opcode semantics in ADD expect.
func (in *Interner) TakeString(bytes string) *ObjString {
	return in.CopyString(bytes)
}

// Release walks the intrusive object list and drops every reference so the
// objects become collectible. Go's GC reclaims the memory; this walk exists
// to mirror the VM teardown invariant that every heap object has exactly
// one owner and is released when that owner (the VM) is torn down.
func (in *Interner) Release() {
	for o := in.objects; o != nil; {
		next := o.Next()
		o.SetNext(nil)
		o = next
	}
	in.objects = nil
	in.strings = make(map[string]*ObjString)
}
