// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

// orgGroupPrefix はリグ生成前の原本ウェイトグループに付ける接頭辞。
const orgGroupPrefix = "ORG-"

// weightTransferMapping は捻り・補助ボーンのウェイトを変形ボーンへ集約する変換表を表す。
var weightTransferMapping = map[string]string{
	"ORG-Bip001UpArmTwist.L":  "DEF-upper_arm.L",
	"ORG-Bip001UpArmTwist1.L": "DEF-upper_arm.L",
	"ORG-Bip001UpArmTwist2.L": "DEF-upper_arm.L.001",
	"ORG-upper_arm.L":         "DEF-upper_arm.L.001",
	"ORG-forearm.L":           "DEF-forearm.L",
	"ORG-Bip001ForeTwist.L":   "DEF-forearm.L.001",
	"ORG-Bip001ForeTwist1.L":  "DEF-forearm.L.001",
	"ORG-Bone_HandTwist_L":    "DEF-forearm.L.001",
	"ORG-Bip001ForeTwist2.L":  "DEF-forearm.L.001",
	"ORG-Bip001_L_Elbow_F":    "DEF-upper_arm.L.001",
	"ORG-Bip001_L_Elbow_B":    "DEF-upper_arm.L.001",
	"ORG-Bip001UpArmTwist.R":  "DEF-upper_arm.R",
	"ORG-Bip001UpArmTwist1.R": "DEF-upper_arm.R",
	"ORG-Bip001UpArmTwist2.R": "DEF-upper_arm.R.001",
	"ORG-upper_arm.R":         "DEF-upper_arm.R.001",
	"ORG-forearm.R":           "DEF-forearm.R",
	"ORG-Bip001ForeTwist.R":   "DEF-forearm.R.001",
	"ORG-Bip001ForeTwist1.R":  "DEF-forearm.R.001",
	"ORG-Bone_HandTwist_R":    "DEF-forearm.R.001",
	"ORG-Bip001ForeTwist2.R":  "DEF-forearm.R.001",
	"ORG-Bip001_R_Elbow_F":    "DEF-upper_arm.R.001",
	"ORG-Bip001_R_Elbow_B":    "DEF-upper_arm.R.001",
	"ORG-Bip001ThighTwist.L":  "DEF-thigh.L",
	"ORG-thigh.L":             "DEF-thigh.L.001",
	"ORG-Bip001_L_Calf":       "DEF-shin.L",
	"ORG-Bip001_L_Knee_B":     "DEF-thigh.L.001",
	"ORG-Bip001_L_Knee_F":     "DEF-thigh.L.001",
	"ORG-Bip001ThighTwist1.L": "DEF-thigh.L",
	"ORG-Bip001_L_CalfTwist":  "DEF-shin.L.001",
	"ORG-Bip001ThighTwist.R":  "DEF-thigh.R",
	"ORG-thigh.R":             "DEF-thigh.R.001",
	"ORG-Bip001_R_Calf":       "DEF-shin.R",
	"ORG-Bip001_R_Knee_B":     "DEF-thigh.R.001",
	"ORG-Bip001_R_Knee_F":     "DEF-thigh.R.001",
	"ORG-Bip001ThighTwist1.R": "DEF-thigh.R",
	"ORG-Bip001_R_CalfTwist":  "DEF-shin.R.001",
}

// weightTransferSummary はウェイト転送の集計を表す。
type weightTransferSummary struct {
	PrefixedGroups   int
	TransferredPairs int
	MovedVertices    int
	RemovedGroups    int
}

// applyWeightTransfer は原本グループへ接頭辞を付け、捻り系ウェイトを変形ボーンへ集約する。
// 加算してから上書き保存するため、頂点の合計ウェイトは転送前後で変わらない。
func applyWeightTransfer(asset *model.CharacterAsset, report *SetupReport) weightTransferSummary {
	summary := weightTransferSummary{}
	if asset == nil || asset.Mesh == nil || asset.Mesh.WeightGroups == nil {
		if report != nil {
			report.append(DerivationResult{
				Name:   "weight_transfer",
				Status: DerivationStatusSkipped,
				Reason: "mesh_missing",
			})
		}
		return summary
	}
	mesh := asset.Mesh

	summary.PrefixedGroups = prefixLegacyWeightGroups(mesh)

	for sourceName, targetName := range weightTransferMapping {
		source, err := mesh.WeightGroups.GetByName(sourceName)
		if err != nil {
			continue
		}
		target, ensureErr := mesh.EnsureWeightGroup(targetName)
		if ensureErr != nil {
			continue
		}
		moved := 0
		for vertexIndex, weight := range source.Weights {
			target.Weights[vertexIndex] += weight
			delete(source.Weights, vertexIndex)
			moved++
		}
		summary.TransferredPairs++
		summary.MovedVertices += moved
		if len(source.Weights) == 0 {
			if removeErr := mesh.WeightGroups.Remove(source.Index()); removeErr == nil {
				summary.RemovedGroups++
			}
		}
	}

	if report != nil {
		if summary.TransferredPairs == 0 && summary.PrefixedGroups == 0 {
			report.append(DerivationResult{
				Name:      "weight_transfer",
				Status:    DerivationStatusSkipped,
				Reason:    "no_source_groups",
				WarningID: model.RigWarningWeightSourceMissing,
			})
		} else {
			report.append(DerivationResult{Name: "weight_transfer", Status: DerivationStatusApplied})
		}
	}
	logrus.Infof(
		"ウェイト転送完了: prefixed=%d pairs=%d vertices=%d removed=%d",
		summary.PrefixedGroups,
		summary.TransferredPairs,
		summary.MovedVertices,
		summary.RemovedGroups,
	)
	return summary
}

// prefixLegacyWeightGroups は原本由来グループへ接頭辞を付ける。付与済みと変形グループは対象外。
func prefixLegacyWeightGroups(mesh *model.Mesh) int {
	prefixed := 0
	for _, group := range mesh.WeightGroups.Values() {
		name := group.Name()
		if strings.HasPrefix(name, orgGroupPrefix) || strings.HasPrefix(name, "DEF-") {
			continue
		}
		if renamed, err := mesh.WeightGroups.Rename(group.Index(), orgGroupPrefix+name); err == nil && renamed {
			prefixed++
		}
	}
	return prefixed
}
