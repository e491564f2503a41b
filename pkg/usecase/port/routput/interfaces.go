// 指示: miu200521358
// Package routput はリグ構成ユースケースの外部契約を提供する。
package routput

import "github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"

// ISceneReader はシーンスナップショット読み込みの契約を表す。
type ISceneReader interface {
	// CanLoad はパスが読み込み可能か判定する。
	CanLoad(path string) bool
	// Load はキャラクターアセットを読み込む。
	Load(path string) (*model.CharacterAsset, error)
}

// IRigGenerator はホスト側コントロールリグ生成器の契約を表す。
// 生成器は準備済みアーマチュアを不透明に展開する。失敗は致命であり
// パイプライン全体を中断する。
type IRigGenerator interface {
	// Generate はアーマチュアへコントロールリグ階層を展開する。
	Generate(asset *model.CharacterAsset) error
}
