// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/collection"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
)

// Vertex はメッシュ頂点を表す。Position は基準形状の位置。
type Vertex struct {
	Position mmath.Vec3
}

// Face は頂点索引の組と材質参照を表す。
type Face struct {
	VertexIndexes []int
	MaterialIndex int
}

// WeightGroup は頂点索引からウェイトへの名前付き対応を表す。
type WeightGroup struct {
	name  string
	index int

	// Weights は頂点索引→ウェイト値[0,1]。グループ間で合計1である必要はない。
	Weights map[int]float64
}

// NewWeightGroup は空のウェイトグループを返す。
func NewWeightGroup(name string) *WeightGroup {
	return &WeightGroup{name: name, index: -1, Weights: map[int]float64{}}
}

// Name はグループ名を返す。
func (g *WeightGroup) Name() string { return g.name }

// SetName はグループ名を設定する。
func (g *WeightGroup) SetName(name string) { g.name = name }

// Index はコレクション内索引を返す。
func (g *WeightGroup) Index() int { return g.index }

// SetIndex はコレクション内索引を設定する。
func (g *WeightGroup) SetIndex(index int) { g.index = index }

// Morph は基準形状からの頂点別差分を表す。
type Morph struct {
	name  string
	index int

	// Offsets は頂点索引→基準形状からの差分。
	Offsets map[int]mmath.Vec3
}

// NewMorph は空のモーフを返す。
func NewMorph(name string) *Morph {
	return &Morph{name: name, index: -1, Offsets: map[int]mmath.Vec3{}}
}

// Name はモーフ名を返す。
func (m *Morph) Name() string { return m.name }

// SetName はモーフ名を設定する。
func (m *Morph) SetName(name string) { m.name = name }

// Index はコレクション内索引を返す。
func (m *Morph) Index() int { return m.index }

// SetIndex はコレクション内索引を設定する。
func (m *Morph) SetIndex(index int) { m.index = index }

// Mesh はスキニング対象メッシュを表す。
type Mesh struct {
	Vertices      []*Vertex
	Faces         []*Face
	MaterialNames []string

	WeightGroups *collection.NamedCollection[*WeightGroup]
	Morphs       *collection.NamedCollection[*Morph]
}

// NewMesh は空のメッシュを返す。
func NewMesh() *Mesh {
	return &Mesh{
		Vertices:      []*Vertex{},
		Faces:         []*Face{},
		MaterialNames: []string{},
		WeightGroups:  collection.NewNamedCollection[*WeightGroup](),
		Morphs:        collection.NewNamedCollection[*Morph](),
	}
}

// EnsureWeightGroup は名前のウェイトグループを返し、無ければ作成する。
func (m *Mesh) EnsureWeightGroup(name string) (*WeightGroup, error) {
	if m == nil || m.WeightGroups == nil {
		return nil, fmt.Errorf("メッシュが未初期化です")
	}
	if group, err := m.WeightGroups.GetByName(name); err == nil {
		return group, nil
	}
	group := NewWeightGroup(name)
	if err := m.WeightGroups.Append(group); err != nil {
		return nil, err
	}
	return group, nil
}

// MaterialName は材質索引から材質名を返す。
func (m *Mesh) MaterialName(materialIndex int) (string, bool) {
	if m == nil || materialIndex < 0 || materialIndex >= len(m.MaterialNames) {
		return "", false
	}
	return m.MaterialNames[materialIndex], true
}
