// 指示: miu200521358
package rinteractor

import (
	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const (
	// alignmentAngleThresholdDegree は近平行と見なす角度しきい値(度)。
	alignmentAngleThresholdDegree = 5.0
	// alignmentMoveAmount は1回の補正でテールを動かす距離。
	alignmentMoveAmount = 0.0001
	// alignmentMaxIterations は整列ループの上限回数。
	alignmentMaxIterations = 50

	leftFinger13BoneName  = "Bip001LFinger13"
	rightFinger13BoneName = "Bip001RFinger13"
)

// alignmentBonePair は整列判定対象のボーン対を表す。
type alignmentBonePair struct {
	FirstName  string
	SecondName string
}

// leftAlignmentBonePairs は左手指の連続セグメント対を表す。
var leftAlignmentBonePairs = []alignmentBonePair{
	{FirstName: "Bip001LFinger1", SecondName: "Bip001LFinger11"},
	{FirstName: "Bip001LFinger11", SecondName: "Bip001LFinger12"},
	{FirstName: "Bip001LFinger12", SecondName: "Bip001LFinger13"},
	{FirstName: "Bip001LFinger2", SecondName: "Bip001LFinger21"},
	{FirstName: "Bip001LFinger21", SecondName: "Bip001LFinger22"},
	{FirstName: "Bip001LFinger22", SecondName: "Bip001LFinger23"},
	{FirstName: "Bip001LFinger3", SecondName: "Bip001LFinger31"},
	{FirstName: "Bip001LFinger31", SecondName: "Bip001LFinger32"},
	{FirstName: "Bip001LFinger32", SecondName: "Bip001LFinger33"},
	{FirstName: "Bip001LFinger4", SecondName: "Bip001LFinger41"},
	{FirstName: "Bip001LFinger41", SecondName: "Bip001LFinger42"},
	{FirstName: "Bip001LFinger42", SecondName: "Bip001LFinger43"},
}

// rightAlignmentBonePairs は右手指の連続セグメント対を表す。
var rightAlignmentBonePairs = []alignmentBonePair{
	{FirstName: "Bip001RFinger1", SecondName: "Bip001RFinger11"},
	{FirstName: "Bip001RFinger11", SecondName: "Bip001RFinger12"},
	{FirstName: "Bip001RFinger12", SecondName: "Bip001RFinger13"},
	{FirstName: "Bip001RFinger2", SecondName: "Bip001RFinger21"},
	{FirstName: "Bip001RFinger21", SecondName: "Bip001RFinger22"},
	{FirstName: "Bip001RFinger22", SecondName: "Bip001RFinger23"},
	{FirstName: "Bip001RFinger3", SecondName: "Bip001RFinger31"},
	{FirstName: "Bip001RFinger31", SecondName: "Bip001RFinger32"},
	{FirstName: "Bip001RFinger32", SecondName: "Bip001RFinger33"},
	{FirstName: "Bip001RFinger4", SecondName: "Bip001RFinger41"},
	{FirstName: "Bip001RFinger41", SecondName: "Bip001RFinger42"},
	{FirstName: "Bip001RFinger42", SecondName: "Bip001RFinger43"},
}

// alignmentSkipPairsIfFinger13 は第3関節あり骨格で整列対象から外す対を表す。
var alignmentSkipPairsIfFinger13 = map[alignmentBonePair]struct{}{
	{FirstName: "Bip001LFinger1", SecondName: "Bip001LFinger11"}: {},
	{FirstName: "Bip001LFinger2", SecondName: "Bip001LFinger21"}: {},
	{FirstName: "Bip001LFinger3", SecondName: "Bip001LFinger31"}: {},
	{FirstName: "Bip001LFinger4", SecondName: "Bip001LFinger41"}: {},
	{FirstName: "Bip001RFinger1", SecondName: "Bip001RFinger11"}: {},
	{FirstName: "Bip001RFinger2", SecondName: "Bip001RFinger21"}: {},
	{FirstName: "Bip001RFinger3", SecondName: "Bip001RFinger31"}: {},
	{FirstName: "Bip001RFinger4", SecondName: "Bip001RFinger41"}: {},
}

// alignmentOutwardBonesWithFinger13 は第3関節あり骨格で外向きに逃がすボーン名を表す。
var alignmentOutwardBonesWithFinger13 = []string{
	"Bip001LFinger11", "Bip001LFinger21", "Bip001LFinger31", "Bip001LFinger41",
	"Bip001RFinger11", "Bip001RFinger21", "Bip001RFinger31", "Bip001RFinger41",
}

// alignmentInwardBonesWithFinger13 は第3関節あり骨格で内向きに逃がすボーン名を表す。
var alignmentInwardBonesWithFinger13 = []string{
	"Bip001LFinger13", "Bip001LFinger23", "Bip001LFinger33", "Bip001LFinger43",
	"Bip001RFinger13", "Bip001RFinger23", "Bip001RFinger33", "Bip001RFinger43",
}

// alignmentOutwardBonesWithoutFinger13 は第3関節なし骨格で外向きに逃がすボーン名を表す。
var alignmentOutwardBonesWithoutFinger13 = []string{
	"Bip001LFinger1", "Bip001LFinger2", "Bip001LFinger3", "Bip001LFinger4",
	"Bip001RFinger1", "Bip001RFinger2", "Bip001RFinger3", "Bip001RFinger4",
}

// alignmentInwardBonesWithoutFinger13 は第3関節なし骨格で内向きに逃がすボーン名を表す。
var alignmentInwardBonesWithoutFinger13 = []string{
	"Bip001LFinger12", "Bip001LFinger22", "Bip001LFinger32", "Bip001LFinger42",
	"Bip001RFinger12", "Bip001RFinger22", "Bip001RFinger32", "Bip001RFinger42",
}

// alignmentSummary は整列ループの集計を表す。
type alignmentSummary struct {
	Pairs          int
	Iterations     int
	Converged      bool
	ViolatingPairs int
}

// applyFingerAlignmentBeforeGenerate は指セグメント対の近平行軸を整列する。
// 固定小数の減衰補正であり、上限回数で必ず停止する。
func applyFingerAlignmentBeforeGenerate(asset *model.CharacterAsset, report *SetupReport) alignmentSummary {
	summary := alignmentSummary{}
	if asset == nil || asset.Armature == nil || asset.Armature.Bones == nil {
		return summary
	}
	armature := asset.Armature
	finger13Exists := armature.Bones.Contains(leftFinger13BoneName) || armature.Bones.Contains(rightFinger13BoneName)

	pairs := allAlignmentBonePairs()
	summary.Pairs = len(pairs)
	logrus.Infof("指ボーン整列開始: pairs=%d finger13=%t", summary.Pairs, finger13Exists)

	for summary.Iterations < alignmentMaxIterations {
		if countAlignmentViolations(armature, pairs, finger13Exists) == 0 {
			summary.Converged = true
			break
		}
		applyAlignmentAdjustment(armature, finger13Exists)
		summary.Iterations++
	}
	summary.ViolatingPairs = countAlignmentViolations(armature, pairs, finger13Exists)
	if summary.Converged {
		summary.ViolatingPairs = 0
	}

	if !summary.Converged && summary.ViolatingPairs > 0 {
		logrus.Warnf(
			"指ボーン整列が上限回数で未収束です: iterations=%d violating=%d",
			summary.Iterations,
			summary.ViolatingPairs,
		)
		if report != nil {
			report.append(DerivationResult{
				Name:      "finger_alignment",
				Status:    DerivationStatusApplied,
				Reason:    "iteration_cap_reached",
				WarningID: model.RigWarningAlignmentNotConverged,
			})
		}
	} else if report != nil {
		report.append(DerivationResult{Name: "finger_alignment", Status: DerivationStatusApplied})
	}
	logrus.Infof(
		"指ボーン整列完了: iterations=%d converged=%t violating=%d",
		summary.Iterations,
		summary.Converged,
		summary.ViolatingPairs,
	)
	return summary
}

// allAlignmentBonePairs は左右の整列対象対を結合して返す。
func allAlignmentBonePairs() []alignmentBonePair {
	pairs := make([]alignmentBonePair, 0, len(leftAlignmentBonePairs)+len(rightAlignmentBonePairs))
	pairs = append(pairs, leftAlignmentBonePairs...)
	pairs = append(pairs, rightAlignmentBonePairs...)
	return pairs
}

// countAlignmentViolations はしきい値未満の角度を持つ対の件数を返す。
func countAlignmentViolations(armature *model.Armature, pairs []alignmentBonePair, finger13Exists bool) int {
	violations := 0
	threshold := mmath.DegToRad(alignmentAngleThresholdDegree)
	for _, pair := range pairs {
		if finger13Exists {
			if _, skip := alignmentSkipPairsIfFinger13[pair]; skip {
				continue
			}
		}
		first, firstErr := armature.Bones.GetByName(pair.FirstName)
		second, secondErr := armature.Bones.GetByName(pair.SecondName)
		if firstErr != nil || secondErr != nil {
			continue
		}
		angle := mmath.AngleBetween(first.LocalAxisX(), second.LocalAxisX())
		if angle < threshold {
			violations++
		}
	}
	return violations
}

// applyAlignmentAdjustment は外向き・内向きボーンのテールを各自のローカルX軸方向へ逃がす。
func applyAlignmentAdjustment(armature *model.Armature, finger13Exists bool) {
	outwardNames := alignmentOutwardBonesWithoutFinger13
	inwardNames := alignmentInwardBonesWithoutFinger13
	if finger13Exists {
		outwardNames = alignmentOutwardBonesWithFinger13
		inwardNames = alignmentInwardBonesWithFinger13
	}

	for _, boneName := range outwardNames {
		nudgeBoneTail(armature, boneName, alignmentMoveAmount)
	}
	for _, boneName := range inwardNames {
		nudgeBoneTail(armature, boneName, -alignmentMoveAmount)
	}
}

// nudgeBoneTail はボーンのテールをローカルX軸方向へ移動する。ボーン不在は見送る。
func nudgeBoneTail(armature *model.Armature, boneName string, amount float64) {
	bone, err := armature.Bones.GetByName(boneName)
	if err != nil {
		return
	}
	bone.Tail = bone.Tail.Added(bone.LocalAxisX().MuledScalar(amount))
}
