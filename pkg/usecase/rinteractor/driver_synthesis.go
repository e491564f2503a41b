// 指示: miu200521358
package rinteractor

import (
	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

// pupilDriverSpec は視線ボーンから瞳モーフを駆動する定義を表す。
type pupilDriverSpec struct {
	TargetMorph string
	VarName     string
	Channel     model.TransformChannel
	Formula     string
}

// pupilDriverCatalog は視線追従の瞳ドライバ定義を表す。
// 正負どちらの側も0でクランプされるため、符号条件は式に畳み込まれている。
var pupilDriverCatalog = []pupilDriverSpec{
	{TargetMorph: "Pupil_L", VarName: "bone_x", Channel: model.TransformChannelLocX, Formula: "max(min((bone_x * 10), 1), 0)"},
	{TargetMorph: "Pupil_R", VarName: "bone_x", Channel: model.TransformChannelLocX, Formula: "max(min((-bone_x * 10), 1), 0)"},
	{TargetMorph: "Pupil_Up", VarName: "bone_y", Channel: model.TransformChannelLocY, Formula: "max(min((bone_y * 10), 1), 0)"},
	{TargetMorph: "Pupil_Down", VarName: "bone_y", Channel: model.TransformChannelLocY, Formula: "max(min((-bone_y * 10), 1), 0)"},
}

// singleDriverSpec は1ボーン1チャンネルのドライバ定義を表す。
type singleDriverSpec struct {
	TargetMorph string
	BoneName    string
	Formula     string
	Channel     model.TransformChannel
}

// facePanelDriverCatalog は表情パネルボーンからモーフを駆動する定義を表す。
var facePanelDriverCatalog = []singleDriverSpec{
	{TargetMorph: "Aa", BoneName: "m.A", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "A", BoneName: "m.AA", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E", BoneName: "m.E", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "I", BoneName: "m.I", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "O", BoneName: "m.O", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "U", BoneName: "m.U", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "P_M_Up_Add", BoneName: "fp.m.pos.sel", Formula: "bone * 5", Channel: model.TransformChannelLocY},
	{TargetMorph: "P_M_Down_Add", BoneName: "fp.m.pos.sel", Formula: "bone * -5", Channel: model.TransformChannelLocY},
	{TargetMorph: "P_M_RMove_Add", BoneName: "fp.m.pos.sel", Formula: "bone * -5", Channel: model.TransformChannelLocX},
	{TargetMorph: "P_M_LMove_Add", BoneName: "fp.m.pos.sel", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "P_M_L_Add", BoneName: "lip.cor.pos.sel.r", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "P_M_R_Add", BoneName: "lip.cor.pos.sel.l", Formula: "bone * -5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_Smile_L", BoneName: "lip.cor.pos.sel.r", Formula: "bone * 5", Channel: model.TransformChannelLocY},
	{TargetMorph: "M_Smile_R", BoneName: "lip.cor.pos.sel.l", Formula: "bone * 5", Channel: model.TransformChannelLocY},
	{TargetMorph: "M_Ennui_L", BoneName: "lip.cor.pos.sel.r", Formula: "bone * -5", Channel: model.TransformChannelLocY},
	{TargetMorph: "M_Ennui_R", BoneName: "lip.cor.pos.sel.l", Formula: "bone * -5", Channel: model.TransformChannelLocY},
	{TargetMorph: "M_Laugh", BoneName: "x1", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_Scared", BoneName: "x2", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_ScaredTooth", BoneName: "x3", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_Anger", BoneName: "x4", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_Nutcracker", BoneName: "x5", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "M_O", BoneName: "x6", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_AH_R", BoneName: "doubt.1", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_AH_L", BoneName: "doubt.2", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Cheerful", BoneName: "b.happy", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Flat", BoneName: "b.flat", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Inside_Add", BoneName: "b.close", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Anger", BoneName: "fp.brow.sel", Formula: "bone * -5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Sad", BoneName: "fp.brow.sel", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "B_Up_Add", BoneName: "fp.brow.sel", Formula: "bone * 5", Channel: model.TransformChannelLocY},
	{TargetMorph: "B_Down_Add", BoneName: "fp.brow.sel", Formula: "bone * -5", Channel: model.TransformChannelLocY},
	{TargetMorph: "E_Insipid", BoneName: "e.ji", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Blephar", BoneName: "e.lowlid", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Focus", BoneName: "e.focus", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Stare", BoneName: "e.wide", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Smile_R", BoneName: "e.wink.up.r", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Smile_L", BoneName: "e.wink.up.l", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Anger", BoneName: "eye.pos", Formula: "bone * -5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Sad", BoneName: "eye.pos", Formula: "bone * 5", Channel: model.TransformChannelLocX},
	{TargetMorph: "E_Close", BoneName: "eye.pos", Formula: "bone * -5", Channel: model.TransformChannelLocY},
}

// dualDriverSpec は2ボーン同チャンネルのドライバ定義を表す。
type dualDriverSpec struct {
	TargetMorph   string
	PrimaryBone   string
	SecondaryBone string
	Formula       string
	Channel       model.TransformChannel
}

// dualDriverCatalog は2入力の最大値合成ドライバ定義を表す。
var dualDriverCatalog = []dualDriverSpec{
	{TargetMorph: "E_Smile_L", PrimaryBone: "eye.pos", SecondaryBone: "e.wink.up.l", Formula: "max(bone_001 * 5, bone * 5)", Channel: model.TransformChannelLocY},
	{TargetMorph: "E_Smile_R", PrimaryBone: "eye.pos", SecondaryBone: "e.wink.up.r", Formula: "max(bone_001 * 5, bone * 5)", Channel: model.TransformChannelLocY},
}

// scaleDriverCatalog はスケールチャンネルから駆動する定義を表す。
var scaleDriverCatalog = []struct {
	TargetMorph string
	BoneName    string
	VarName     string
	Channel     model.TransformChannel
	Formula     string
}{
	{TargetMorph: "E_Close", BoneName: "EyeTracker", VarName: "scaleval", Channel: model.TransformChannelScaleY, Formula: "(1 - scaleval) * 2"},
	{TargetMorph: "E_Close.L", BoneName: "Eye.L", VarName: "scaleval", Channel: model.TransformChannelScaleY, Formula: "(1 - scaleval) * 2"},
	{TargetMorph: "E_Close.R", BoneName: "Eye.R", VarName: "scaleval", Channel: model.TransformChannelScaleY, Formula: "(1 - scaleval) * 2"},
	{TargetMorph: "Pupil_Scale", BoneName: "EyeScale", VarName: "scaleval", Channel: model.TransformChannelScaleX, Formula: "(1 - scaleval) * 2"},
	{TargetMorph: "E_Stare", BoneName: "EyeTracker", VarName: "yscale", Channel: model.TransformChannelScaleY, Formula: "max(min((yscale - 1) * 2, 1), 0)"},
}

// driverSynthesisSummary はドライバ合成の集計を表す。
type driverSynthesisSummary struct {
	Bound        int
	SkippedBound int
	NoTargets    int
}

// applyDriverSynthesis はモーフ駆動式のカタログをモデルへ束ねる。
// 同一モーフへの後続定義は先勝ちで見送り、何度実行しても結果は変わらない。
func applyDriverSynthesis(asset *model.CharacterAsset, report *SetupReport) driverSynthesisSummary {
	summary := driverSynthesisSummary{}
	if asset == nil || asset.Drivers == nil {
		return summary
	}

	// 瞳カタログ: EyeTracker全体と左右目の側別変種。
	for _, spec := range pupilDriverCatalog {
		bindDriver(asset, report, &summary, spec.TargetMorph, spec.Formula, []model.DriverInput{
			{BoneName: "EyeTracker", Channel: spec.Channel, VarName: spec.VarName},
		})
	}
	for _, side := range []struct {
		Suffix   string
		BoneName string
	}{
		{Suffix: leftSuffix, BoneName: "Eye.L"},
		{Suffix: rightSuffix, BoneName: "Eye.R"},
	} {
		for _, spec := range pupilDriverCatalog {
			bindDriver(asset, report, &summary, spec.TargetMorph+side.Suffix, spec.Formula, []model.DriverInput{
				{BoneName: side.BoneName, Channel: spec.Channel, VarName: spec.VarName},
			})
		}
	}

	for _, spec := range facePanelDriverCatalog {
		bindDriver(asset, report, &summary, spec.TargetMorph, spec.Formula, []model.DriverInput{
			{BoneName: spec.BoneName, Channel: spec.Channel, VarName: "bone"},
		})
	}

	for _, spec := range dualDriverCatalog {
		bindDriver(asset, report, &summary, spec.TargetMorph, spec.Formula, []model.DriverInput{
			{BoneName: spec.PrimaryBone, Channel: spec.Channel, VarName: "bone_001"},
			{BoneName: spec.SecondaryBone, Channel: spec.Channel, VarName: "bone"},
		})
	}

	for _, spec := range scaleDriverCatalog {
		bindDriver(asset, report, &summary, spec.TargetMorph, spec.Formula, []model.DriverInput{
			{BoneName: spec.BoneName, Channel: spec.Channel, VarName: spec.VarName},
		})
	}

	logrus.Infof(
		"ドライバ合成完了: bound=%d skipped=%d noTarget=%d",
		summary.Bound,
		summary.SkippedBound,
		summary.NoTargets,
	)
	return summary
}

// bindDriver は1定義をコンパイルして登録する。対象モーフ不在と束ね済みは見送る。
func bindDriver(
	asset *model.CharacterAsset,
	report *SetupReport,
	summary *driverSynthesisSummary,
	targetMorph string,
	formula string,
	inputs []model.DriverInput,
) {
	if asset.Mesh == nil || asset.Mesh.Morphs == nil || !asset.Mesh.Morphs.Contains(targetMorph) {
		summary.NoTargets++
		return
	}
	if asset.Drivers.Has(targetMorph) {
		summary.SkippedBound++
		if report != nil {
			report.append(DerivationResult{Name: targetMorph, Status: DerivationStatusSkipped, Reason: "already_bound"})
		}
		return
	}

	inputMissing := false
	for _, input := range inputs {
		if asset.Armature == nil || !asset.Armature.Bones.Contains(input.BoneName) {
			logrus.Warnf("ドライバ入力ボーンが見つかりません: morph=%s bone=%s", targetMorph, input.BoneName)
			// 入力ボーン不在でも束ねる。評価時に0として扱われる。
			inputMissing = true
			break
		}
	}

	binding, err := model.NewDriverBinding(targetMorph, inputs, formula)
	if err != nil {
		logrus.Warnf("ドライバ式の構築に失敗しました: morph=%s err=%v", targetMorph, err)
		return
	}
	if asset.Drivers.Add(binding) {
		summary.Bound++
		if report == nil {
			return
		}
		result := DerivationResult{Name: targetMorph, Status: DerivationStatusApplied}
		if inputMissing {
			result.Reason = "input_bone_missing"
			result.WarningID = model.RigWarningDriverSourceMissing
		}
		report.append(result)
	}
}
