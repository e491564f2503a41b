// 指示: miu200521358
package model

// CharacterAsset は1キャラクター分の共有シーン状態を表す。
// 全工程がこの1つの可変グラフを順に読み書きする。
type CharacterAsset struct {
	// Name はキャラクター名(出力リグ名の元)。
	Name string

	Armature *Armature
	Mesh     *Mesh
	Drivers  *DriverSet
}

// NewCharacterAsset は空のキャラクターアセットを返す。
func NewCharacterAsset(name string) *CharacterAsset {
	return &CharacterAsset{
		Name:     name,
		Armature: NewArmature(),
		Mesh:     NewMesh(),
		Drivers:  NewDriverSet(),
	}
}
