// 指示: miu200521358
// Package rinteractor はリグ再構成パイプラインのユースケース群を提供する。
package rinteractor

import (
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
	"github.com/miu200521358/mu_wuwa_rig/pkg/usecase/port/routput"
)

// SetupProgressEventType はリグ構成処理の進捗イベント種別を表す。
type SetupProgressEventType string

const (
	// SetupProgressEventTypeAlignmentCompleted はボーン整列完了イベントを表す。
	SetupProgressEventTypeAlignmentCompleted SetupProgressEventType = "alignment_completed"
	// SetupProgressEventTypeSkeletonPrepared は骨格準備完了イベントを表す。
	SetupProgressEventTypeSkeletonPrepared SetupProgressEventType = "skeleton_prepared"
	// SetupProgressEventTypeRenameCompleted はボーン名称変換完了イベントを表す。
	SetupProgressEventTypeRenameCompleted SetupProgressEventType = "rename_completed"
	// SetupProgressEventTypeRigGenerated はホストリグ生成完了イベントを表す。
	SetupProgressEventTypeRigGenerated SetupProgressEventType = "rig_generated"
	// SetupProgressEventTypeRigSynthesized は補助ボーン合成完了イベントを表す。
	SetupProgressEventTypeRigSynthesized SetupProgressEventType = "rig_synthesized"
	// SetupProgressEventTypeWeightsTransferred はウェイト移管完了イベントを表す。
	SetupProgressEventTypeWeightsTransferred SetupProgressEventType = "weights_transferred"
	// SetupProgressEventTypeEyeMorphsSplit は目モーフ分割完了イベントを表す。
	SetupProgressEventTypeEyeMorphsSplit SetupProgressEventType = "eye_morphs_split"
	// SetupProgressEventTypeDriversBound はドライバー登録完了イベントを表す。
	SetupProgressEventTypeDriversBound SetupProgressEventType = "drivers_bound"
)

// SetupProgressEvent はリグ構成処理の進捗イベントを表す。
type SetupProgressEvent struct {
	Type      SetupProgressEventType
	ItemCount int
}

// ISetupProgressReporter はリグ構成処理の進捗通知契約を表す。
type ISetupProgressReporter interface {
	// ReportSetupProgress はリグ構成進捗を通知する。
	ReportSetupProgress(event SetupProgressEvent)
}

// DerivationStatus は1派生処理の結果種別を表す。
type DerivationStatus string

const (
	// DerivationStatusApplied は派生適用済みを表す。
	DerivationStatusApplied DerivationStatus = "applied"
	// DerivationStatusSkipped は入力不足等による派生見送りを表す。
	DerivationStatusSkipped DerivationStatus = "skipped"
)

// DerivationResult は1派生処理の結果を表す。
type DerivationResult struct {
	Name      string
	Status    DerivationStatus
	Reason    string
	WarningID string
}

// SetupReport はリグ構成全体の結果集計を表す。
type SetupReport struct {
	Derivations []DerivationResult
	WarningIDs  []string
}

// append は派生結果を追記し、警告IDを集約する。
func (r *SetupReport) append(result DerivationResult) {
	r.Derivations = append(r.Derivations, result)
	if result.WarningID != "" {
		r.WarningIDs = append(r.WarningIDs, result.WarningID)
	}
}

// Skipped は見送りになった派生結果の一覧を返す。
func (r *SetupReport) Skipped() []DerivationResult {
	skipped := []DerivationResult{}
	for _, result := range r.Derivations {
		if result.Status == DerivationStatusSkipped {
			skipped = append(skipped, result)
		}
	}
	return skipped
}

// SetupRequest はリグ構成要求を表す。
type SetupRequest struct {
	Asset            *model.CharacterAsset
	Generator        routput.IRigGenerator
	ProgressReporter ISetupProgressReporter
}

// SetupResult はリグ構成結果を表す。
type SetupResult struct {
	Asset  *model.CharacterAsset
	Report *SetupReport
}

// RigSetupUsecase はリグ再構成パイプラインを表す。
type RigSetupUsecase struct {
	generator routput.IRigGenerator
}

// NewRigSetupUsecase はリグ構成ユースケースを生成する。
func NewRigSetupUsecase(generator routput.IRigGenerator) *RigSetupUsecase {
	return &RigSetupUsecase{generator: generator}
}

// reportSetupProgress はリグ構成処理の進捗を通知する。
func reportSetupProgress(reporter ISetupProgressReporter, event SetupProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportSetupProgress(event)
}
