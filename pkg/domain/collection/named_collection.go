// 指示: miu200521358
// Package collection は名前引きできる順序付きコンテナを提供する。
package collection

import "fmt"

// INamedItem は名前と索引を持つ要素の契約を表す。
type INamedItem interface {
	Name() string
	SetName(name string)
	Index() int
	SetIndex(index int)
}

// NamedCollection は挿入順を保持しつつ名前で引ける要素集合を表す。
type NamedCollection[T INamedItem] struct {
	items       []T
	indexByName map[string]int
}

// NewNamedCollection は空のコレクションを返す。
func NewNamedCollection[T INamedItem]() *NamedCollection[T] {
	return &NamedCollection[T]{
		items:       []T{},
		indexByName: map[string]int{},
	}
}

// Len は要素数を返す。
func (c *NamedCollection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Append は要素を末尾へ追加し、索引を割り当てる。同名要素はエラー。
func (c *NamedCollection[T]) Append(item T) error {
	if c == nil {
		return fmt.Errorf("コレクションが未初期化です")
	}
	if _, exists := c.indexByName[item.Name()]; exists {
		return fmt.Errorf("同名要素が既に存在します: %s", item.Name())
	}
	item.SetIndex(len(c.items))
	c.indexByName[item.Name()] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Get は索引で要素を返す。
func (c *NamedCollection[T]) Get(index int) (T, error) {
	var zero T
	if c == nil || index < 0 || index >= len(c.items) {
		return zero, fmt.Errorf("索引が範囲外です: %d", index)
	}
	return c.items[index], nil
}

// GetByName は名前で要素を返す。
func (c *NamedCollection[T]) GetByName(name string) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("コレクションが未初期化です")
	}
	index, exists := c.indexByName[name]
	if !exists {
		return zero, fmt.Errorf("要素が見つかりません: %s", name)
	}
	return c.items[index], nil
}

// Contains は名前の要素が存在するか判定する。
func (c *NamedCollection[T]) Contains(name string) bool {
	if c == nil {
		return false
	}
	_, exists := c.indexByName[name]
	return exists
}

// Rename は索引の要素名を変更する。変更先が他要素と衝突する場合は false を返す。
func (c *NamedCollection[T]) Rename(index int, newName string) (bool, error) {
	if c == nil || index < 0 || index >= len(c.items) {
		return false, fmt.Errorf("索引が範囲外です: %d", index)
	}
	item := c.items[index]
	if item.Name() == newName {
		return false, nil
	}
	if existing, exists := c.indexByName[newName]; exists && existing != index {
		return false, nil
	}
	delete(c.indexByName, item.Name())
	item.SetName(newName)
	c.indexByName[newName] = index
	return true, nil
}

// Remove は索引の要素を取り除き、後続要素の索引を詰め直す。
func (c *NamedCollection[T]) Remove(index int) error {
	if c == nil || index < 0 || index >= len(c.items) {
		return fmt.Errorf("索引が範囲外です: %d", index)
	}
	delete(c.indexByName, c.items[index].Name())
	c.items = append(c.items[:index], c.items[index+1:]...)
	for i := index; i < len(c.items); i++ {
		c.items[i].SetIndex(i)
		c.indexByName[c.items[i].Name()] = i
	}
	return nil
}

// Values は挿入順の要素一覧を返す。
func (c *NamedCollection[T]) Values() []T {
	if c == nil {
		return nil
	}
	return c.items
}
