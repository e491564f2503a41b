// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const (
	rightSourcePrefix = "Bip001R"
	leftSourcePrefix  = "Bip001L"
	neutralPrefix     = "Bip001"
	rightSuffix       = ".R"
	leftSuffix        = ".L"
	// renameTempSuffix は2段階リネームの衝突回避用一時接尾辞。
	renameTempSuffix = "__renaming"
)

// semanticNameMapping は側性除去後の基底名から意味名への変換表を表す。
var semanticNameMapping = map[string]string{
	"Bip001Neck":     "neck",
	"Bip001Head":     "head",
	"Bip001Clavicle": "shoulder",
	"Bip001UpperArm": "upper_arm",
	"Bip001Forearm":  "forearm",
	"Bip001Hand":     "hand",
	"Bip001Thigh":    "thigh",
	"Bip001Calf":     "shin",
	"Bip001Foot":     "foot",
	"Bip001Toe0":     "toe_ik",
	"Bip001Heel0":    "heel.02",
	"Bip001Spine":    "Spine",
	"Bip001Spine1":   "Spine1",
	"Bip001Spine2":   "Spine2",
	"Bip001Pelvis":   "Pelvis",
	"Bip001Finger0":  "thumb.01",
	"Bip001Finger01": "thumb.02",
	"Bip001Finger02": "thumb.03",
}

// fingerNameMappingWithFinger13 は第3関節あり骨格の指基底名変換表を表す。
var fingerNameMappingWithFinger13 = map[string]string{
	"Bip001Finger11": "f_index.01", "Bip001Finger12": "f_index.02", "Bip001Finger13": "f_index.03",
	"Bip001Finger21": "f_middle.01", "Bip001Finger22": "f_middle.02", "Bip001Finger23": "f_middle.03",
	"Bip001Finger31": "f_ring.01", "Bip001Finger32": "f_ring.02", "Bip001Finger33": "f_ring.03",
	"Bip001Finger41": "f_pinky.01", "Bip001Finger42": "f_pinky.02", "Bip001Finger43": "f_pinky.03",
}

// fingerNameMappingWithoutFinger13 は第3関節なし骨格の指基底名変換表を表す。
var fingerNameMappingWithoutFinger13 = map[string]string{
	"Bip001Finger1": "f_index.01", "Bip001Finger11": "f_index.02", "Bip001Finger12": "f_index.03",
	"Bip001Finger2": "f_middle.01", "Bip001Finger21": "f_middle.02", "Bip001Finger22": "f_middle.03",
	"Bip001Finger3": "f_ring.01", "Bip001Finger31": "f_ring.02", "Bip001Finger32": "f_ring.03",
	"Bip001Finger4": "f_pinky.01", "Bip001Finger41": "f_pinky.02", "Bip001Finger42": "f_pinky.03",
}

// renameSummary はリネーム処理の集計を表す。
type renameSummary struct {
	Renamed      int
	PropRewrites int
}

// applyBoneNameNormalization は側性接頭辞を接尾辞化し、意味名へ正規化する。
// 計画を先に確定してから一括適用する2段階方式で、連鎖・循環リネームでも取り違えない。
func applyBoneNameNormalization(asset *model.CharacterAsset, report *SetupReport) renameSummary {
	summary := renameSummary{}
	if asset == nil || asset.Armature == nil || asset.Armature.Bones == nil {
		return summary
	}
	armature := asset.Armature
	finger13Exists := armature.Bones.Contains(leftFinger13BoneName) || armature.Bones.Contains(rightFinger13BoneName)

	plan := buildRenamePlan(armature, finger13Exists)
	if len(plan) == 0 {
		logrus.Info("ボーン名正規化: 変更対象なし")
		if report != nil {
			report.append(DerivationResult{
				Name:   "bone_name_normalization",
				Status: DerivationStatusSkipped,
				Reason: "no_rename_targets",
			})
		}
		return summary
	}

	applyRenamePlan(armature, plan)
	summary.Renamed = len(plan)
	summary.PropRewrites = rewriteBoneNameProps(armature, plan)

	if report != nil {
		report.append(DerivationResult{Name: "bone_name_normalization", Status: DerivationStatusApplied})
	}
	logrus.Infof("ボーン名正規化完了: renamed=%d propRewrites=%d", summary.Renamed, summary.PropRewrites)
	return summary
}

// buildRenamePlan は全ボーンを走査し旧名から新名への計画を返す。
func buildRenamePlan(armature *model.Armature, finger13Exists bool) map[string]string {
	plan := map[string]string{}
	for _, bone := range armature.Bones.Values() {
		newName := normalizeBoneName(bone.Name(), finger13Exists)
		if newName != bone.Name() {
			plan[bone.Name()] = newName
		}
	}
	return plan
}

// normalizeBoneName は1ボーン名を正規化した名前を返す。対象外はそのまま返す。
func normalizeBoneName(name string, finger13Exists bool) string {
	newName := name
	if strings.HasPrefix(newName, rightSourcePrefix) && !strings.HasSuffix(newName, rightSuffix) {
		newName += rightSuffix
	} else if strings.HasPrefix(newName, leftSourcePrefix) && !strings.HasSuffix(newName, leftSuffix) {
		newName += leftSuffix
	}

	baseName := newName
	suffix := ""
	if strings.HasSuffix(baseName, leftSuffix) {
		baseName = strings.TrimSuffix(baseName, leftSuffix)
		suffix = leftSuffix
	} else if strings.HasSuffix(baseName, rightSuffix) {
		baseName = strings.TrimSuffix(baseName, rightSuffix)
		suffix = rightSuffix
	}
	if strings.HasPrefix(baseName, rightSourcePrefix) {
		baseName = neutralPrefix + strings.TrimPrefix(baseName, rightSourcePrefix)
	} else if strings.HasPrefix(baseName, leftSourcePrefix) {
		baseName = neutralPrefix + strings.TrimPrefix(baseName, leftSourcePrefix)
	}

	if semantic, ok := lookupSemanticName(baseName, finger13Exists); ok {
		return semantic + suffix
	}
	// 意味名を持たない側性ボーンは中立基底名+接尾辞に留める。
	if strings.HasPrefix(name, rightSourcePrefix) || strings.HasPrefix(name, leftSourcePrefix) {
		return baseName + suffix
	}
	return name
}

// lookupSemanticName は基底名に対応する意味名を返す。
func lookupSemanticName(baseName string, finger13Exists bool) (string, bool) {
	if semantic, ok := semanticNameMapping[baseName]; ok {
		return semantic, true
	}
	fingerMapping := fingerNameMappingWithoutFinger13
	if finger13Exists {
		fingerMapping = fingerNameMappingWithFinger13
	}
	semantic, ok := fingerMapping[baseName]
	return semantic, ok
}

// applyRenamePlan は一時名を経由してリネーム計画を一括適用する。
func applyRenamePlan(armature *model.Armature, plan map[string]string) {
	tempNames := map[string]string{}
	for oldName := range plan {
		bone, err := armature.Bones.GetByName(oldName)
		if err != nil {
			continue
		}
		tempName := oldName + renameTempSuffix
		if _, renameErr := armature.Bones.Rename(bone.Index(), tempName); renameErr != nil {
			continue
		}
		armature.RenameGroupMember(oldName, tempName)
		tempNames[tempName] = plan[oldName]
	}
	for tempName, newName := range tempNames {
		bone, err := armature.Bones.GetByName(tempName)
		if err != nil {
			continue
		}
		if _, renameErr := armature.Bones.Rename(bone.Index(), newName); renameErr != nil {
			continue
		}
		armature.RenameGroupMember(tempName, newName)
	}
}

// rewriteBoneNameProps はカスタムプロパティ文字列値中の旧名を新名へ置き換える。
func rewriteBoneNameProps(armature *model.Armature, plan map[string]string) int {
	rewrites := 0
	for _, bone := range armature.Bones.Values() {
		for key, value := range bone.Props {
			if strings.HasPrefix(key, "_") {
				continue
			}
			strValue, ok := value.(string)
			if !ok {
				continue
			}
			if newName, renamed := plan[strValue]; renamed {
				bone.Props[key] = newName
				rewrites++
			}
		}
	}
	return rewrites
}
