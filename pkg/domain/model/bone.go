// 指示: miu200521358
// Package model はリグ再構成対象のシーン内データ型を提供する。
package model

import (
	"fmt"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/collection"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
)

// Bone はヘッド・テール・ロールを持つ骨格セグメントを表す。
type Bone struct {
	name  string
	index int

	Head mmath.Vec3
	Tail mmath.Vec3
	Roll float64

	// ParentIndex は親ボーン索引。ルートは -1。
	ParentIndex int
	// Connected はテールが親テールへ接続しているかを表す。
	Connected bool
	// Deform はスキニング対象かを表す。
	Deform bool

	// RigType はホスト側リグ生成器へのチェーン種別ヒントを表す。
	RigType string
	// WidgetType はコントロール形状ヒントを表す。
	WidgetType string

	// Props はIK/FK係数やポールベクタ指定などの任意プロパティを保持する。
	Props map[string]any

	LockLocation bool
	LockRotation bool
	LockScale    bool

	// ColorTheme はUI表示用のパレットタグ(非機能メタデータ)。
	ColorTheme string
}

// NewBone は名前と形状からボーンを生成する。
func NewBone(name string, head mmath.Vec3, tail mmath.Vec3) *Bone {
	return &Bone{
		name:        name,
		index:       -1,
		Head:        head,
		Tail:        tail,
		ParentIndex: -1,
		Props:       map[string]any{},
	}
}

// Name はボーン名を返す。
func (b *Bone) Name() string { return b.name }

// SetName はボーン名を設定する。
func (b *Bone) SetName(name string) { b.name = name }

// Index はコレクション内索引を返す。
func (b *Bone) Index() int { return b.index }

// SetIndex はコレクション内索引を設定する。
func (b *Bone) SetIndex(index int) { b.index = index }

// Direction はヘッドからテールへの向きを返す。
func (b *Bone) Direction() mmath.Vec3 {
	return b.Tail.Subed(b.Head)
}

// Length はボーン長を返す。
func (b *Bone) Length() float64 {
	return b.Direction().Length()
}

// LocalAxisX はロールを考慮したローカルX軸を返す。
// ボーン軸(Y)へ +Y を向ける最短弧回転に、軸回りロール回転を重ねて解決する。
func (b *Bone) LocalAxisX() mmath.Vec3 {
	direction := b.Direction().Normalized()
	if direction.IsZero() {
		return mmath.UNIT_X_VEC3
	}
	align := mmath.NewQuaternionRotate(mmath.UNIT_Y_VEC3, direction)
	roll := mmath.NewQuaternionFromAxisAngle(direction, b.Roll)
	return roll.Muled(align).MulVec3(mmath.UNIT_X_VEC3).Normalized()
}

// BoneGroup は表示・整理用のボーングループを表す。
type BoneGroup struct {
	Name    string
	UIRow   int
	Visible bool
}

// Armature はボーン集合とボーングループを表す。
type Armature struct {
	Bones *collection.NamedCollection[*Bone]

	groups           []*BoneGroup
	groupIndexByName map[string]int
	groupByBone      map[string]string
}

// NewArmature は空のアーマチュアを返す。
func NewArmature() *Armature {
	return &Armature{
		Bones:            collection.NewNamedCollection[*Bone](),
		groups:           []*BoneGroup{},
		groupIndexByName: map[string]int{},
		groupByBone:      map[string]string{},
	}
}

// AppendBone はボーンを追加する。
func (a *Armature) AppendBone(bone *Bone) error {
	if a == nil || a.Bones == nil {
		return fmt.Errorf("アーマチュアが未初期化です")
	}
	return a.Bones.Append(bone)
}

// AddGroup は末尾へボーングループを追加して返す。同名は既存を返す。
func (a *Armature) AddGroup(name string, uiRow int) *BoneGroup {
	if a == nil {
		return nil
	}
	if index, exists := a.groupIndexByName[name]; exists {
		return a.groups[index]
	}
	group := &BoneGroup{Name: name, UIRow: uiRow, Visible: true}
	a.groupIndexByName[name] = len(a.groups)
	a.groups = append(a.groups, group)
	return group
}

// Group は名前でボーングループを返す。
func (a *Armature) Group(name string) (*BoneGroup, bool) {
	if a == nil {
		return nil, false
	}
	index, exists := a.groupIndexByName[name]
	if !exists {
		return nil, false
	}
	return a.groups[index], true
}

// Groups は追加順のボーングループ一覧を返す。
func (a *Armature) Groups() []*BoneGroup {
	if a == nil {
		return nil
	}
	return a.groups
}

// AssignToGroup はボーンをグループへ所属させる。既存所属からは退去する。
func (a *Armature) AssignToGroup(boneName string, groupName string) error {
	if a == nil {
		return fmt.Errorf("アーマチュアが未初期化です")
	}
	if !a.Bones.Contains(boneName) {
		return fmt.Errorf("ボーンが見つかりません: %s", boneName)
	}
	if _, exists := a.groupIndexByName[groupName]; !exists {
		return fmt.Errorf("ボーングループが見つかりません: %s", groupName)
	}
	a.groupByBone[boneName] = groupName
	return nil
}

// GroupOf はボーンの所属グループ名を返す。
func (a *Armature) GroupOf(boneName string) (string, bool) {
	if a == nil {
		return "", false
	}
	groupName, exists := a.groupByBone[boneName]
	return groupName, exists
}

// GroupMembers はグループ所属ボーン名をボーン追加順で返す。
func (a *Armature) GroupMembers(groupName string) []string {
	if a == nil || a.Bones == nil {
		return nil
	}
	members := []string{}
	for _, bone := range a.Bones.Values() {
		if a.groupByBone[bone.Name()] == groupName {
			members = append(members, bone.Name())
		}
	}
	return members
}

// RenameGroupMember はボーン名変更後のグループ所属キーを付け替える。
func (a *Armature) RenameGroupMember(oldName string, newName string) {
	if a == nil {
		return
	}
	if groupName, exists := a.groupByBone[oldName]; exists {
		delete(a.groupByBone, oldName)
		a.groupByBone[newName] = groupName
	}
}

// ChildIndexes は親索引ごとの子索引一覧を返す。
func (a *Armature) ChildIndexes(parentIndex int) []int {
	if a == nil || a.Bones == nil {
		return nil
	}
	children := []int{}
	for _, bone := range a.Bones.Values() {
		if bone.ParentIndex == parentIndex {
			children = append(children, bone.Index())
		}
	}
	return children
}
