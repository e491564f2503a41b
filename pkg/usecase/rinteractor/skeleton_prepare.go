// 指示: miu200521358
package rinteractor

import (
	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const (
	// spineFixupMinLength は胸椎ボーンを延長補正する長さしきい値。
	spineFixupMinLength = 0.06
	// spineFixupLength は延長補正後の胸椎ボーン長。
	spineFixupLength = 0.15
	// spineFixupLift は胸椎ボーンを持ち上げる高さ。
	spineFixupLift = 0.03
)

// tailWeldBonePairs は親のテールを子のヘッドに接合する対を表す。
var tailWeldBonePairs = []alignmentBonePair{
	{FirstName: "Bip001Spine1", SecondName: "Bip001Spine2"},
	{FirstName: "Bip001Pelvis", SecondName: "Bip001Spine"},
	{FirstName: "Bip001RThigh", SecondName: "Bip001RCalf"},
	{FirstName: "Bip001LThigh", SecondName: "Bip001LCalf"},
	{FirstName: "Bip001RCalf", SecondName: "Bip001RFoot"},
	{FirstName: "Bip001LCalf", SecondName: "Bip001LFoot"},
	{FirstName: "Bip001LUpperArm", SecondName: "Bip001LForearm"},
	{FirstName: "Bip001RUpperArm", SecondName: "Bip001RForearm"},
	{FirstName: "Bip001LForearm", SecondName: "Bip001LHand"},
	{FirstName: "Bip001RForearm", SecondName: "Bip001RHand"},
	{FirstName: "Bip001LFoot", SecondName: "Bip001LToe0"},
	{FirstName: "Bip001RFoot", SecondName: "Bip001RToe0"},
}

// twistReparentTargets は捻りボーンとその正しい親を表す。
var twistReparentTargets = map[string]string{
	"Bip001RForeTwist": "Bip001RForearm",
	"Bip001LForeTwist": "Bip001LForearm",
}

// connectFlagBoneNames は親と接続フラグを立てるボーン名を表す。
var connectFlagBoneNames = []string{
	"Bip001Spine", "Bip001Spine1", "Bip001Spine2",
	"Bip001LForearm", "Bip001LHand", "Bip001LFinger01",
	"Bip001LFinger02", "Bip001LFinger11", "Bip001LFinger12",
	"Bip001LFinger21", "Bip001LFinger22", "Bip001LFinger31",
	"Bip001LFinger32", "Bip001LFinger41", "Bip001LFinger42",
	"Bip001RForearm", "Bip001RHand", "Bip001RFinger01",
	"Bip001RFinger02", "Bip001RFinger11", "Bip001RFinger12",
	"Bip001RFinger21", "Bip001RFinger22", "Bip001RFinger31",
	"Bip001RFinger32", "Bip001RFinger41", "Bip001RFinger42",
	"Bip001LCalf", "Bip001LFoot", "Bip001LToe0",
	"Bip001RCalf", "Bip001RFoot", "Bip001RToe0",
	"Bip001Head",
	"Bip001LFinger13", "Bip001LFinger23", "Bip001LFinger33", "Bip001LFinger43",
	"Bip001RFinger13", "Bip001RFinger23", "Bip001RFinger33", "Bip001RFinger43",
}

// rollZeroBoneNames はロールを0に揃えるボーン名を表す。
var rollZeroBoneNames = []string{
	"Bip001Pelvis", "Bip001Spine", "Bip001Spine1",
	"Bip001Spine2", "Bip001LClavicle", "Bip001RClavicle",
}

// rigTypeTagging はボーンに付与するリグ種別とウィジェット種別を表す。
type rigTypeTagging struct {
	BoneName   string
	RigType    string
	WidgetType string
}

// baseRigTypeTaggings は骨格変種によらないリグ種別付与を表す。
var baseRigTypeTaggings = []rigTypeTagging{
	{BoneName: "Bip001Pelvis", RigType: "spines.basic_spine"},
	{BoneName: "Bip001LClavicle", RigType: "basic.super_copy", WidgetType: "shoulder"},
	{BoneName: "Bip001RClavicle", RigType: "basic.super_copy", WidgetType: "shoulder"},
	{BoneName: "Bip001LUpperArm", RigType: "limbs.arm"},
	{BoneName: "Bip001RUpperArm", RigType: "limbs.arm"},
	{BoneName: "Bip001LThigh", RigType: "limbs.leg"},
	{BoneName: "Bip001RThigh", RigType: "limbs.leg"},
	{BoneName: "Bip001RFinger0", RigType: "limbs.super_finger"},
	{BoneName: "Bip001LFinger0", RigType: "limbs.super_finger"},
	{BoneName: "Bip001Neck", RigType: "basic.super_copy", WidgetType: "circle"},
	{BoneName: "Bip001Head", RigType: "basic.super_copy", WidgetType: "circle"},
}

// fingerRigTypeBonesWithFinger13 は第3関節あり骨格で指リグ種別を付与する根元ボーン名を表す。
var fingerRigTypeBonesWithFinger13 = []string{
	"Bip001LFinger11", "Bip001LFinger21", "Bip001LFinger31", "Bip001LFinger41",
	"Bip001RFinger11", "Bip001RFinger21", "Bip001RFinger31", "Bip001RFinger41",
}

// fingerRigTypeBonesWithoutFinger13 は第3関節なし骨格で指リグ種別を付与する根元ボーン名を表す。
var fingerRigTypeBonesWithoutFinger13 = []string{
	"Bip001LFinger1", "Bip001LFinger2", "Bip001LFinger3", "Bip001LFinger4",
	"Bip001RFinger1", "Bip001RFinger2", "Bip001RFinger3", "Bip001RFinger4",
}

// skeletonPrepareSummary は骨格前処理の集計を表す。
type skeletonPrepareSummary struct {
	SpineFixed     bool
	WeldedPairs    int
	Reparented     int
	Connected      int
	RollsZeroed    int
	RigTypesTagged int
}

// applySkeletonPreparation はリグ生成前の骨格整形を適用する。
func applySkeletonPreparation(asset *model.CharacterAsset, report *SetupReport) skeletonPrepareSummary {
	summary := skeletonPrepareSummary{}
	if asset == nil || asset.Armature == nil || asset.Armature.Bones == nil {
		return summary
	}
	armature := asset.Armature

	summary.SpineFixed = fixupShortSpine(armature)
	summary.WeldedPairs = weldBoneTails(armature)
	summary.Reparented = reparentTwistBones(armature)
	summary.Connected = markConnectedBones(armature)
	summary.RollsZeroed = zeroBoneRolls(armature)
	summary.RigTypesTagged = tagRigTypes(armature)

	if report != nil {
		report.append(DerivationResult{Name: "skeleton_preparation", Status: DerivationStatusApplied})
	}
	logrus.Infof(
		"骨格前処理完了: spineFixed=%t welded=%d reparented=%d connected=%d rolls=%d rigTypes=%d",
		summary.SpineFixed,
		summary.WeldedPairs,
		summary.Reparented,
		summary.Connected,
		summary.RollsZeroed,
		summary.RigTypesTagged,
	)
	return summary
}

// fixupShortSpine は短すぎる胸椎ボーンを延長し持ち上げる。
func fixupShortSpine(armature *model.Armature) bool {
	spine, err := armature.Bones.GetByName("Bip001Spine2")
	if err != nil {
		return false
	}
	if spine.Length() >= spineFixupMinLength {
		return false
	}
	direction := spine.Direction().Normalized()
	spine.Tail = spine.Head.Added(direction.MuledScalar(spineFixupLength))
	spine.Tail.Y = spine.Head.Y
	spine.Head.Z += spineFixupLift
	spine.Tail.Z += spineFixupLift
	return true
}

// weldBoneTails は親のテールを子のヘッド位置へ接合する。
func weldBoneTails(armature *model.Armature) int {
	welded := 0
	for _, pair := range tailWeldBonePairs {
		parent, parentErr := armature.Bones.GetByName(pair.FirstName)
		child, childErr := armature.Bones.GetByName(pair.SecondName)
		if parentErr != nil || childErr != nil {
			continue
		}
		parent.Tail = child.Head
		welded++
	}
	return welded
}

// reparentTwistBones は捻りボーンの親を正しい前腕に付け替える。
func reparentTwistBones(armature *model.Armature) int {
	reparented := 0
	for twistName, parentName := range twistReparentTargets {
		twist, twistErr := armature.Bones.GetByName(twistName)
		parent, parentErr := armature.Bones.GetByName(parentName)
		if twistErr != nil || parentErr != nil {
			continue
		}
		if twist.ParentIndex != parent.Index() {
			twist.ParentIndex = parent.Index()
			reparented++
		}
	}
	return reparented
}

// markConnectedBones は所定ボーンに親接続フラグを立てる。
func markConnectedBones(armature *model.Armature) int {
	connected := 0
	for _, boneName := range connectFlagBoneNames {
		bone, err := armature.Bones.GetByName(boneName)
		if err != nil {
			continue
		}
		bone.Connected = true
		connected++
	}
	return connected
}

// zeroBoneRolls は体幹と鎖骨のロールを0に揃える。
func zeroBoneRolls(armature *model.Armature) int {
	zeroed := 0
	for _, boneName := range rollZeroBoneNames {
		bone, err := armature.Bones.GetByName(boneName)
		if err != nil {
			continue
		}
		bone.Roll = 0
		zeroed++
	}
	return zeroed
}

// tagRigTypes はリグ生成器への種別タグを付与する。
func tagRigTypes(armature *model.Armature) int {
	taggings := make([]rigTypeTagging, 0, len(baseRigTypeTaggings)+8)
	taggings = append(taggings, baseRigTypeTaggings...)

	fingerBones := fingerRigTypeBonesWithoutFinger13
	if armature.Bones.Contains(leftFinger13BoneName) || armature.Bones.Contains(rightFinger13BoneName) {
		fingerBones = fingerRigTypeBonesWithFinger13
	}
	for _, boneName := range fingerBones {
		taggings = append(taggings, rigTypeTagging{BoneName: boneName, RigType: "limbs.super_finger"})
	}

	tagged := 0
	for _, tagging := range taggings {
		bone, err := armature.Bones.GetByName(tagging.BoneName)
		if err != nil {
			continue
		}
		bone.RigType = tagging.RigType
		if tagging.WidgetType != "" {
			bone.WidgetType = tagging.WidgetType
		}
		tagged++
	}
	return tagged
}
