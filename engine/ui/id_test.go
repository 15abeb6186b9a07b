package ui

import "testing"

func TestIDDeterministic(t *testing.T) {
	c := newTestContext(t)
	a := c.IDString("button")
	b := c.IDString("button")
	if a != b {
		t.Errorf("same key produced different ids: %v vs %v", a, b)
	}
	if c.IDString("other") == a {
		t.Error("distinct keys produced the same id")
	}
}

func TestIDScopeSensitive(t *testing.T) {
	c := newTestContext(t)
	root := c.IDString("ok")

	c.PushIDString("dialog-a")
	inA := c.IDString("ok")
	c.PopID()

	c.PushIDString("dialog-b")
	inB := c.IDString("ok")
	c.PopID()

	if inA == inB {
		t.Error("same key in different scopes produced the same id")
	}
	if inA == root || inB == root {
		t.Error("scoped id equals unscoped id")
	}

	// Re-entering the same scope reproduces the id.
	c.PushIDString("dialog-a")
	if got := c.IDString("ok"); got != inA {
		t.Errorf("re-entered scope: id %v, want %v", got, inA)
	}
	c.PopID()
}

func TestIDNestedScopes(t *testing.T) {
	c := newTestContext(t)
	c.PushIDString("outer")
	c.PushIDString("inner")
	deep := c.IDString("x")
	c.PopID()
	shallow := c.IDString("x")
	c.PopID()
	if deep == shallow {
		t.Error("nested scope id equals parent scope id")
	}
}

func TestIDBytesMatchesString(t *testing.T) {
	c := newTestContext(t)
	if c.ID([]byte("key")) != c.IDString("key") {
		t.Error("byte and string hashing disagree")
	}
}

func TestLastID(t *testing.T) {
	c := newTestContext(t)
	id := c.IDString("thing")
	if c.LastID() != id {
		t.Errorf("LastID = %v, want %v", c.LastID(), id)
	}
}

func TestPopIDUnderflowPanics(t *testing.T) {
	c := newTestContext(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on PopID without PushID")
		}
	}()
	c.PopID()
}

func TestPushIDOverflowPanics(t *testing.T) {
	c := newTestContext(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on id stack overflow")
		}
	}()
	for i := 0; i <= maxIDStack; i++ {
		c.PushIDString("deep")
	}
}
