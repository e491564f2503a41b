// 指示: miu200521358
package model

const (
	// RigWarningPropKey はリグ構成時警告ID集合を保持するカスタムプロパティのキー。
	RigWarningPropKey = "MU_WUWA_RIG_warnings"

	// RigWarningAlignmentNotConverged は整列ループ上限到達警告。
	RigWarningAlignmentNotConverged = "RigWarningAlignmentNotConverged"
	// RigWarningHeelSourceMissing はかかとボーン複製元不足警告。
	RigWarningHeelSourceMissing = "RigWarningHeelSourceMissing"
	// RigWarningTweakSourceMissing は首・頭FK補助ボーン複製元不足警告。
	RigWarningTweakSourceMissing = "RigWarningTweakSourceMissing"
	// RigWarningEyeTrackerSourceMissing はアイトラッカー親ボーン不足警告。
	RigWarningEyeTrackerSourceMissing = "RigWarningEyeTrackerSourceMissing"
	// RigWarningEyeMaterialMissing は目材質未検出警告。
	RigWarningEyeMaterialMissing = "RigWarningEyeMaterialMissing"
	// RigWarningMorphSplitSourceMissing は分割元モーフ不足警告。
	RigWarningMorphSplitSourceMissing = "RigWarningMorphSplitSourceMissing"
	// RigWarningDriverTargetMissing はドライバー対象モーフ不足警告。
	RigWarningDriverTargetMissing = "RigWarningDriverTargetMissing"
	// RigWarningDriverSourceMissing はドライバー参照ボーン不足警告。
	RigWarningDriverSourceMissing = "RigWarningDriverSourceMissing"
	// RigWarningWeightSourceMissing はウェイト移管元グループ不足警告。
	RigWarningWeightSourceMissing = "RigWarningWeightSourceMissing"
)
