// 指示: miu200521358
package collection

import "testing"

type namedItem struct {
	name  string
	index int
}

func (i *namedItem) Name() string        { return i.name }
func (i *namedItem) SetName(name string) { i.name = name }
func (i *namedItem) Index() int          { return i.index }
func (i *namedItem) SetIndex(index int)  { i.index = index }

func TestAppendAssignsSequentialIndexes(t *testing.T) {
	c := NewNamedCollection[*namedItem]()
	for _, name := range []string{"first", "second", "third"} {
		if err := c.Append(&namedItem{name: name}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("len mismatch: %d", c.Len())
	}
	second, err := c.GetByName("second")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if second.Index() != 1 {
		t.Fatalf("index mismatch: %d", second.Index())
	}
}

func TestAppendRejectsDuplicateName(t *testing.T) {
	c := NewNamedCollection[*namedItem]()
	if err := c.Append(&namedItem{name: "dup"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := c.Append(&namedItem{name: "dup"}); err == nil {
		t.Fatalf("duplicate append should fail")
	}
}

func TestRenameUpdatesLookup(t *testing.T) {
	c := NewNamedCollection[*namedItem]()
	if err := c.Append(&namedItem{name: "old"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	renamed, err := c.Rename(0, "new")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if !renamed {
		t.Fatalf("rename should report change")
	}
	if c.Contains("old") {
		t.Fatalf("old name should be removed")
	}
	if !c.Contains("new") {
		t.Fatalf("new name should be registered")
	}
}

func TestRenameRefusesCollision(t *testing.T) {
	c := NewNamedCollection[*namedItem]()
	if err := c.Append(&namedItem{name: "a"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := c.Append(&namedItem{name: "b"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	renamed, err := c.Rename(0, "b")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed {
		t.Fatalf("rename into existing name should be refused")
	}
	if item, _ := c.Get(0); item.Name() != "a" {
		t.Fatalf("name should be unchanged: %s", item.Name())
	}
}

func TestRemoveReindexesFollowingItems(t *testing.T) {
	c := NewNamedCollection[*namedItem]()
	for _, name := range []string{"a", "b", "c"} {
		if err := c.Append(&namedItem{name: name}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if err := c.Remove(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("len mismatch: %d", c.Len())
	}
	b, err := c.GetByName("b")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if b.Index() != 0 {
		t.Fatalf("reindex mismatch: %d", b.Index())
	}
	last, err := c.GetByName("c")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if last.Index() != 1 {
		t.Fatalf("reindex mismatch: %d", last.Index())
	}
}
