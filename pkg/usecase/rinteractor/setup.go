// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Setup はリグ再構成パイプラインを実行する。
// 整列→骨格準備→名称正規化→ホストリグ生成→補助合成→ウェイト移管→
// 瞳モーフ分割→ドライバー登録の順で進み、致命となるのはリグ生成失敗のみ。
// 各段は入力不足を見送りとして報告へ記録し、途中段まででも整合した状態を残す。
func (u *RigSetupUsecase) Setup(request SetupRequest) (*SetupResult, error) {
	if request.Asset == nil {
		return nil, fmt.Errorf("リグ構成対象が未指定です")
	}
	generator := request.Generator
	if generator == nil {
		generator = u.generator
	}
	if generator == nil {
		return nil, fmt.Errorf("リグ生成器が未指定です")
	}

	asset := request.Asset
	reporter := request.ProgressReporter
	report := &SetupReport{}
	logrus.Infof("リグ構成開始: %s", asset.Name)

	alignment := applyFingerAlignmentBeforeGenerate(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeAlignmentCompleted,
		ItemCount: alignment.Iterations,
	})

	prepared := applySkeletonPreparation(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeSkeletonPrepared,
		ItemCount: prepared.WeldedPairs + prepared.Reparented + prepared.Connected,
	})

	renamed := applyBoneNameNormalization(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeRenameCompleted,
		ItemCount: renamed.Renamed,
	})

	if err := generator.Generate(asset); err != nil {
		return nil, fmt.Errorf("ホストリグ生成に失敗しました: %w", err)
	}
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeRigGenerated,
		ItemCount: asset.Armature.Bones.Len(),
	})

	synthesized := applyRigSynthesis(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeRigSynthesized,
		ItemCount: synthesized.DerivedBones,
	})

	transferred := applyWeightTransfer(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeWeightsTransferred,
		ItemCount: transferred.TransferredPairs,
	})

	eyeSplit := applyEyeMorphSplit(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeEyeMorphsSplit,
		ItemCount: eyeSplit.SplitMorphs,
	})

	drivers := applyDriverSynthesis(asset, report)
	reportSetupProgress(reporter, SetupProgressEvent{
		Type:      SetupProgressEventTypeDriversBound,
		ItemCount: drivers.Bound,
	})

	logrus.Infof(
		"リグ構成完了: %s derivations=%d warnings=%d",
		asset.Name,
		len(report.Derivations),
		len(report.WarningIDs),
	)
	return &SetupResult{Asset: asset, Report: report}, nil
}
