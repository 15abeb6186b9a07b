package ui

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// ID is the stable 32-bit identity of a widget. It is derived by hashing the
// widget's key seeded with the enclosing scope, so the same key produces the
// same ID on every frame as long as the surrounding Push/Pop scope path is
// unchanged.
type ID uint32

// 32-bit FNV-1a.
const (
	idSeedInitial ID = 2166136261
	idPrime       ID = 16777619
)

func hashBytes(seed ID, data []byte) ID {
	h := seed
	for _, b := range data {
		h = (h ^ ID(b)) * idPrime
	}
	return h
}

func hashString(seed ID, s string) ID {
	h := seed
	for i := 0; i < len(s); i++ {
		h = (h ^ ID(s[i])) * idPrime
	}
	return h
}

func (c *Context) idSeed() ID {
	if n := len(c.idStack); n > 0 {
		return c.idStack[n-1]
	}
	return idSeedInitial
}

// ID hashes data under the current scope and records it as the last ID.
func (c *Context) ID(data []byte) ID {
	id := hashBytes(c.idSeed(), data)
	c.lastID = id
	return id
}

// IDString is ID for string keys without a byte-slice conversion.
func (c *Context) IDString(s string) ID {
	id := hashString(c.idSeed(), s)
	c.lastID = id
	return id
}

// PushID opens an identity scope: all IDs computed until the matching PopID
// are seeded by the scope's own identity. Push/Pop must balance within a
// frame.
func (c *Context) PushID(data []byte) {
	c.pushIDSeed(c.ID(data))
}

// PushIDString is PushID for string keys.
func (c *Context) PushIDString(s string) {
	c.pushIDSeed(c.IDString(s))
}

func (c *Context) pushIDSeed(id ID) {
	if len(c.idStack) >= maxIDStack {
		panic(fmt.Sprintf("ui: id scope stack overflow (depth %d); unbalanced PushID or nesting too deep", maxIDStack))
	}
	c.idStack = append(c.idStack, id)
}

// PopID closes the innermost identity scope.
func (c *Context) PopID() {
	if len(c.idStack) == 0 {
		panic("ui: PopID without matching PushID")
	}
	c.idStack = c.idStack[:len(c.idStack)-1]
}

// ptrBytes keys an identity off the address of caller-owned state, which is
// stable for the lifetime of the value the control mutates.
func ptrBytes(p unsafe.Pointer) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(uintptr(p)))
	return b[:]
}
