// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const (
	// heelRotationAngle はつま先からかかとを起こす回転角(ラジアン)。
	heelRotationAngle = 1.5708
	// tweakBoneLength は首・頭の操作ボーンの固定長。
	tweakBoneLength = 0.05
	// eyeTrackerForwardOffset は視線ボーンを頭部から前方へ出す距離。
	eyeTrackerForwardOffset = 0.15
	// eyeTrackerLift は視線ボーンを持ち上げる高さ。
	eyeTrackerLift = 0.03
	// eyeSideOffset は左右目ボーンの横オフセット。
	eyeSideOffset = 0.03
	// longBoneMaxLength はこれを超えるボーンを詰める長さしきい値。
	longBoneMaxLength = 1.0
	// longBoneClampedLength は詰めた後のボーン長。
	longBoneClampedLength = 0.5
	// hairLongChainMinLength はこのチェーン長以上の髪をHair 2に送るしきい値。
	hairLongChainMinLength = 4
)

// boneGroupSpec はボーングループ定義を表す。
type boneGroupSpec struct {
	Name    string
	UIRow   int
	Visible bool
}

// boneGroupCatalog はリグのボーングループ一覧を表す。
var boneGroupCatalog = []boneGroupSpec{
	{Name: "Torso", UIRow: 1, Visible: true},
	{Name: "Torso (Tweak)", UIRow: 2, Visible: false},
	{Name: "Fingers", UIRow: 3, Visible: true},
	{Name: "Fingers (Details)", UIRow: 4, Visible: false},
	{Name: "Arm.L (IK)", UIRow: 5, Visible: true},
	{Name: "Arm.R (IK)", UIRow: 5, Visible: true},
	{Name: "Arm.L (FK)", UIRow: 6, Visible: false},
	{Name: "Arm.R (FK)", UIRow: 6, Visible: false},
	{Name: "Arm.L (Tweak)", UIRow: 7, Visible: false},
	{Name: "Arm.R (Tweak)", UIRow: 7, Visible: false},
	{Name: "Leg.L (IK)", UIRow: 8, Visible: true},
	{Name: "Leg.R (IK)", UIRow: 8, Visible: true},
	{Name: "Leg.L (FK)", UIRow: 9, Visible: false},
	{Name: "Leg.R (FK)", UIRow: 9, Visible: false},
	{Name: "Leg.L (Tweak)", UIRow: 10, Visible: false},
	{Name: "Leg.R (Tweak)", UIRow: 10, Visible: false},
	{Name: "Hair 1", UIRow: 11, Visible: false},
	{Name: "Hair 2", UIRow: 11, Visible: false},
	{Name: "Cloth", UIRow: 12, Visible: false},
	{Name: "Skirt", UIRow: 12, Visible: false},
	{Name: "Breast / Tail", UIRow: 13, Visible: false},
	{Name: "Root", UIRow: 14, Visible: true},
	{Name: "Others", UIRow: 15, Visible: false},
}

// groupMemberCatalog はグループへ明示的に所属させるボーン名一覧を表す。
var groupMemberCatalog = map[string][]string{
	"Torso": {
		"torso", "chest", "shoulder.L", "shoulder.R", "hips", "neck", "head",
		"EyeTracker", "Eye.L", "Eye.R",
	},
	"Torso (Tweak)": {
		"Spine_fk", "Spine1_fk", "Spine2_fk", "tweak_Spine1",
		"tweak_Spine2", "tweak_Spine2.001", "tweak_Spine", "tweak_Pelvis", "Pelvis_fk", "tweak_neck",
	},
	"Fingers": {
		"thumb.01_master.L", "f_index.01_master.L", "f_middle.01_master.L", "f_ring.01_master.L", "f_pinky.01_master.L",
		"thumb.01_master.R", "f_index.01_master.R", "f_middle.01_master.R", "f_ring.01_master.R", "f_pinky.01_master.R",
		"f_index.02_master.L", "f_middle.02_master.L", "f_ring.02_master.L", "f_pinky.02_master.L",
		"f_index.02_master.R", "f_middle.02_master.R", "f_ring.02_master.R", "f_pinky.02_master.R",
	},
	"Fingers (Details)": {
		"thumb.01.L", "thumb.02.L", "thumb.03.L", "thumb.01.L.001",
		"f_index.01.L", "f_index.02.L", "f_index.03.L", "f_index.01.L.001",
		"f_middle.01.L", "f_middle.02.L", "f_middle.03.L", "f_middle.01.L.001",
		"f_ring.01.L", "f_ring.02.L", "f_ring.03.L", "f_ring.01.L.001",
		"f_pinky.01.L", "f_pinky.02.L", "f_pinky.03.L", "f_pinky.01.L.001",
		"thumb.01.R", "thumb.02.R", "thumb.03.R", "thumb.01.R.001",
		"f_index.01.R", "f_index.02.R", "f_index.03.R", "f_index.01.R.001",
		"f_middle.01.R", "f_middle.02.R", "f_middle.03.R", "f_middle.01.R.001",
		"f_ring.01.R", "f_ring.02.R", "f_ring.03.R", "f_ring.01.R.001",
		"f_pinky.01.R", "f_pinky.02.R", "f_pinky.03.R", "f_pinky.01.R.001",
		"f_index.02.L.001", "f_middle.02.L.001", "f_ring.02.L.001", "f_pinky.02.L.001",
		"f_index.02.R.001", "f_middle.02.R.001", "f_ring.02.R.001", "f_pinky.02.R.001",
	},
	"Arm.L (IK)": {
		"upper_arm_parent.L", "upper_arm_ik.L", "hand_ik.L", "upper_arm_ik_target.L", "VIS_upper_arm_ik_pole.L",
	},
	"Arm.R (IK)": {
		"upper_arm_parent.R", "upper_arm_ik.R", "hand_ik.R", "upper_arm_ik_target.R", "VIS_upper_arm_ik_pole.R",
	},
	"Arm.L (FK)": {"upper_arm_fk.L", "forearm_fk.L", "hand_fk.L"},
	"Arm.R (FK)": {"upper_arm_fk.R", "forearm_fk.R", "hand_fk.R"},
	"Arm.L (Tweak)": {
		"upper_arm_tweak.L", "upper_arm_tweak.L.001", "forearm_tweak.L", "forearm_tweak.L.001", "hand_tweak.L",
	},
	"Arm.R (Tweak)": {
		"upper_arm_tweak.R", "upper_arm_tweak.R.001", "forearm_tweak.R", "forearm_tweak.R.001", "hand_tweak.R",
	},
	"Leg.L (IK)": {
		"thigh_parent.L", "thigh_ik.L", "foot_heel_ik.L", "foot_spin_ik.L", "toe_ik.L", "foot_ik.L",
		"thigh_ik_target.L", "VIS_thigh_ik_pole.L",
	},
	"Leg.R (IK)": {
		"thigh_parent.R", "thigh_ik.R", "foot_heel_ik.R", "foot_spin_ik.R", "toe_ik.R", "foot_ik.R",
		"thigh_ik_target.R", "VIS_thigh_ik_pole.R",
	},
	"Leg.L (FK)": {"thigh_fk.L", "shin_fk.L", "foot_fk.L", "toe_fk.L"},
	"Leg.R (FK)": {"thigh_fk.R", "shin_fk.R", "foot_fk.R", "toe_fk.R"},
	"Leg.L (Tweak)": {
		"thigh_tweak.L", "thigh_tweak.L.001", "shin_tweak.L", "shin_tweak.L.001", "foot_tweak.L",
	},
	"Leg.R (Tweak)": {
		"thigh_tweak.R", "thigh_tweak.R.001", "shin_tweak.R", "shin_tweak.R.001", "foot_tweak.R",
	},
}

// groupThemeCatalog はグループ所属ボーンへ与えるパレットを表す。
var groupThemeCatalog = map[string]string{
	"Torso":             "THEME09",
	"Torso (Tweak)":     "THEME04",
	"Fingers":           "THEME14",
	"Fingers (Details)": "THEME03",
	"Arm.L (IK)":        "THEME01",
	"Arm.R (IK)":        "THEME01",
	"Arm.L (FK)":        "THEME03",
	"Arm.R (FK)":        "THEME03",
	"Arm.L (Tweak)":     "THEME04",
	"Arm.R (Tweak)":     "THEME04",
	"Leg.L (IK)":        "THEME01",
	"Leg.R (IK)":        "THEME01",
	"Leg.L (FK)":        "THEME03",
	"Leg.R (FK)":        "THEME03",
	"Leg.L (Tweak)":     "THEME04",
	"Leg.R (Tweak)":     "THEME04",
}

// boneThemeAssignments は個別ボーンへ与えるパレットを表す。
var boneThemeAssignments = map[string]string{
	"EyeTracker": "THEME01",
	"Eye.L":      "THEME09",
	"Eye.R":      "THEME09",
	"toe_fk.L":   "THEME03",
	"toe_fk.R":   "THEME03",
}

// keywordGroupRule は名前部分一致でグループへ送る規則を表す。
type keywordGroupRule struct {
	Keyword   string
	GroupName string
}

// keywordGroupRules は部分一致グループ振り分け規則を表す。先勝ちで適用する。
var keywordGroupRules = []keywordGroupRule{
	{Keyword: "Earrings", GroupName: "Hair 1"},
	{Keyword: "Piao", GroupName: "Cloth"},
	{Keyword: "Skirt", GroupName: "Skirt"},
	{Keyword: "Trousers", GroupName: "Skirt"},
	{Keyword: "Tail", GroupName: "Breast / Tail"},
	{Keyword: "Other", GroupName: "Others"},
	{Keyword: "Weapon", GroupName: "Others"},
	{Keyword: "Prop", GroupName: "Others"},
	{Keyword: "Chibang", GroupName: "Others"},
	{Keyword: "neck.001", GroupName: "Others"},
	{Keyword: "head.001", GroupName: "Others"},
	{Keyword: "Chest", GroupName: "Breast / Tail"},
}

// ikPropertySeedBoneNames はIK系プロパティを初期化するボーン名を表す。
var ikPropertySeedBoneNames = []string{
	"upper_arm_parent.L", "upper_arm_parent.R", "thigh_parent.L", "thigh_parent.R",
}

// waistBoneKeywords はスカート判定に使う腰回りボーン名キーワードを表す。
var waistBoneKeywords = []string{"Pelvis", "Spine", "hips", "torso"}

// synthesisSummary は制御リグ合成の集計を表す。
type synthesisSummary struct {
	DerivedBones  int
	GroupedBones  int
	ClampedBones  int
	DeformEnabled int
}

// applyRigSynthesis はリグ生成後の派生ボーン合成とグループ整理を適用する。
func applyRigSynthesis(asset *model.CharacterAsset, report *SetupReport) synthesisSummary {
	summary := synthesisSummary{}
	if asset == nil || asset.Armature == nil || asset.Armature.Bones == nil {
		return summary
	}
	armature := asset.Armature

	summary.DerivedBones += deriveHeelBones(armature, report)
	summary.DerivedBones += deriveToeFKBones(armature, report)
	summary.DerivedBones += deriveNeckHeadTweaks(armature, report)
	summary.DerivedBones += deriveEyeTrackerBones(armature, report)

	seedIKProperties(armature)
	summary.DeformEnabled = enableOrgDeform(armature)
	summary.ClampedBones = clampLongBones(armature)
	summary.GroupedBones = assignBoneGroups(armature)
	assignThemes(armature)

	logrus.Infof(
		"制御リグ合成完了: derived=%d grouped=%d clamped=%d deform=%d",
		summary.DerivedBones,
		summary.GroupedBones,
		summary.ClampedBones,
		summary.DeformEnabled,
	)
	return summary
}

// findBone は名前順の候補から最初に見つかったボーンを返す。
func findBone(armature *model.Armature, names ...string) (*model.Bone, bool) {
	for _, name := range names {
		bone, err := armature.Bones.GetByName(name)
		if err == nil {
			return bone, true
		}
	}
	return nil, false
}

// deriveHeelBones はつま先ボーンを倒してかかとボーンを合成する。
func deriveHeelBones(armature *model.Armature, report *SetupReport) int {
	derived := 0
	for _, side := range []struct {
		Suffix string
		Angle  float64
	}{
		{Suffix: leftSuffix, Angle: heelRotationAngle},
		{Suffix: rightSuffix, Angle: -heelRotationAngle},
	} {
		heelName := "heel.02" + side.Suffix
		resultName := "heel" + side.Suffix
		if armature.Bones.Contains(heelName) {
			report.append(DerivationResult{Name: resultName, Status: DerivationStatusSkipped, Reason: "already_exists"})
			continue
		}
		toe, toeFound := findBone(armature, "ORG-toe_ik"+side.Suffix, "toe_ik"+side.Suffix)
		foot, footFound := findBone(armature, "ORG-foot"+side.Suffix, "foot"+side.Suffix)
		if !toeFound || !footFound {
			report.append(DerivationResult{
				Name:      resultName,
				Status:    DerivationStatusSkipped,
				Reason:    "source_missing",
				WarningID: model.RigWarningHeelSourceMissing,
			})
			continue
		}
		heel := model.NewBone(heelName, toe.Head, toe.Tail)
		heel.Roll = toe.Roll
		heel.Tail = heel.Head.Added(mmath.RotatedAroundY(heel.Tail.Subed(heel.Head), side.Angle))
		heel.Head.Y = foot.Head.Y
		heel.Tail.Y = foot.Head.Y
		heel.ParentIndex = foot.Index()
		if err := armature.AppendBone(heel); err != nil {
			report.append(DerivationResult{Name: resultName, Status: DerivationStatusSkipped, Reason: "append_failed"})
			continue
		}
		report.append(DerivationResult{Name: resultName, Status: DerivationStatusApplied})
		derived++
	}
	return derived
}

// deriveToeFKBones はFK足首チェーンへつま先FKボーンを合成する。
func deriveToeFKBones(armature *model.Armature, report *SetupReport) int {
	derived := 0
	for _, side := range []string{leftSuffix, rightSuffix} {
		toeFKName := "toe_fk" + side
		resultName := "toe_fk" + side
		if armature.Bones.Contains(toeFKName) {
			report.append(DerivationResult{Name: resultName, Status: DerivationStatusSkipped, Reason: "already_exists"})
			continue
		}
		orgToe, orgFound := findBone(armature, "ORG-toe_ik"+side)
		footFK, footFound := findBone(armature, "foot_fk"+side)
		if !orgFound || !footFound {
			report.append(DerivationResult{
				Name:   resultName,
				Status: DerivationStatusSkipped,
				Reason: "source_missing",
			})
			continue
		}
		toeFK := model.NewBone(toeFKName, orgToe.Head, orgToe.Tail)
		toeFK.Roll = orgToe.Roll
		toeFK.ParentIndex = footFK.Index()
		toeFK.Connected = true
		if err := armature.AppendBone(toeFK); err != nil {
			report.append(DerivationResult{Name: resultName, Status: DerivationStatusSkipped, Reason: "append_failed"})
			continue
		}
		// FK/IK切替メタデータ。影響度はIK_FK係数で補間される。
		orgToe.Props["fk_rotation_source"] = toeFKName
		orgToe.Props["ik_fk_property_bone"] = "thigh_parent" + side
		report.append(DerivationResult{Name: resultName, Status: DerivationStatusApplied})
		derived++
	}
	return derived
}

// deriveNeckHeadTweaks は首・頭の直下に操作ボーンを差し込む。
// 元ボーンを -90度 倒して水平化し固定長へ詰めた姿勢で、親子の間に割り込む。
func deriveNeckHeadTweaks(armature *model.Armature, report *SetupReport) int {
	derived := 0
	for _, target := range []struct {
		ResultName string
		Sources    []string
		Canonical  string
	}{
		{ResultName: "neck_tweak", Sources: []string{"ORG-Bip001Neck", "ORG-neck"}, Canonical: "Bip001Neck"},
		{ResultName: "head_tweak", Sources: []string{"ORG-Bip001Head", "ORG-head"}, Canonical: "Bip001Head"},
	} {
		tweakName := target.Canonical + "._fk"
		if armature.Bones.Contains(tweakName) {
			report.append(DerivationResult{Name: target.ResultName, Status: DerivationStatusSkipped, Reason: "already_exists"})
			continue
		}
		source, found := findBone(armature, append([]string{target.Canonical}, target.Sources...)...)
		if !found {
			report.append(DerivationResult{
				Name:      target.ResultName,
				Status:    DerivationStatusSkipped,
				Reason:    "source_missing",
				WarningID: model.RigWarningTweakSourceMissing,
			})
			continue
		}
		if sourceName := source.Name(); sourceName != target.Canonical {
			if _, err := armature.Bones.Rename(source.Index(), target.Canonical); err != nil {
				report.append(DerivationResult{Name: target.ResultName, Status: DerivationStatusSkipped, Reason: "rename_failed"})
				continue
			}
			armature.RenameGroupMember(sourceName, target.Canonical)
		}

		tweak := model.NewBone(tweakName, source.Head, source.Tail)
		tweak.Roll = source.Roll
		tweak.ParentIndex = source.ParentIndex
		tweak.Tail = tweak.Head.Added(mmath.RotatedAroundX(tweak.Tail.Subed(tweak.Head), -heelRotationAngle))
		tweak.Tail.Z = tweak.Head.Z
		tweak.Tail = tweak.Head.Added(tweak.Tail.Subed(tweak.Head).Normalized().MuledScalar(tweakBoneLength))
		if err := armature.AppendBone(tweak); err != nil {
			report.append(DerivationResult{Name: target.ResultName, Status: DerivationStatusSkipped, Reason: "append_failed"})
			continue
		}
		source.Connected = false
		source.ParentIndex = tweak.Index()
		report.append(DerivationResult{Name: target.ResultName, Status: DerivationStatusApplied})
		derived++
	}
	return derived
}

// deriveEyeTrackerBones は頭部前方へ視線ボーンと左右目ボーンを合成する。
func deriveEyeTrackerBones(armature *model.Armature, report *SetupReport) int {
	if armature.Bones.Contains("EyeTracker") {
		report.append(DerivationResult{Name: "eye_tracker", Status: DerivationStatusSkipped, Reason: "already_exists"})
		return 0
	}
	head, found := findBone(armature, "ORG-head", "ORG-Bip001Head", "Bip001Head")
	if !found {
		report.append(DerivationResult{
			Name:      "eye_tracker",
			Status:    DerivationStatusSkipped,
			Reason:    "source_missing",
			WarningID: model.RigWarningEyeTrackerSourceMissing,
		})
		return 0
	}

	trackerHead := head.Head
	trackerHead.Y -= eyeTrackerForwardOffset
	trackerHead.Z += eyeTrackerLift
	tracker := model.NewBone("EyeTracker", trackerHead, trackerHead.Added(mmath.Vec3{Z: eyeTrackerLift}))
	tracker.ParentIndex = head.Index()
	if err := armature.AppendBone(tracker); err != nil {
		report.append(DerivationResult{Name: "eye_tracker", Status: DerivationStatusSkipped, Reason: "append_failed"})
		return 0
	}

	derived := 1
	tailOffset := tracker.Tail.Subed(tracker.Head)
	for _, side := range []struct {
		Name    string
		OffsetX float64
	}{
		{Name: "Eye.L", OffsetX: eyeSideOffset},
		{Name: "Eye.R", OffsetX: -eyeSideOffset},
	} {
		eyeHead := tracker.Head.Added(mmath.Vec3{X: side.OffsetX})
		eye := model.NewBone(side.Name, eyeHead, eyeHead.Added(tailOffset))
		eye.ParentIndex = tracker.Index()
		if err := armature.AppendBone(eye); err != nil {
			continue
		}
		derived++
	}
	report.append(DerivationResult{Name: "eye_tracker", Status: DerivationStatusApplied})
	return derived
}

// seedIKProperties はIK伸縮とポールベクタの初期値を設定する。
func seedIKProperties(armature *model.Armature) {
	for _, boneName := range ikPropertySeedBoneNames {
		bone, err := armature.Bones.GetByName(boneName)
		if err != nil {
			continue
		}
		bone.Props["IK_Stretch"] = 0.0
		bone.Props["pole_vector"] = true
	}
}

// enableOrgDeform はORG接頭辞ボーンを変形対象に戻す。
func enableOrgDeform(armature *model.Armature) int {
	enabled := 0
	for _, bone := range armature.Bones.Values() {
		if strings.HasPrefix(bone.Name(), "ORG-") && !bone.Deform {
			bone.Deform = true
			enabled++
		}
	}
	return enabled
}

// clampLongBones は異常に長いボーンのテールを詰める。
func clampLongBones(armature *model.Armature) int {
	clamped := 0
	for _, bone := range armature.Bones.Values() {
		if bone.Length() > longBoneMaxLength {
			bone.Tail = bone.Head.Added(bone.Direction().Normalized().MuledScalar(longBoneClampedLength))
			clamped++
		}
	}
	return clamped
}

// assignBoneGroups はグループ登録・明示所属・キーワード振り分けを適用する。
func assignBoneGroups(armature *model.Armature) int {
	for _, spec := range boneGroupCatalog {
		group := armature.AddGroup(spec.Name, spec.UIRow)
		group.Visible = spec.Visible
	}

	assigned := 0
	for _, spec := range boneGroupCatalog {
		for _, boneName := range groupMemberCatalog[spec.Name] {
			if err := armature.AssignToGroup(boneName, spec.Name); err == nil {
				assigned++
			}
		}
	}

	assigned += assignHairGroups(armature)
	assigned += assignKeywordGroups(armature)
	assigned += separateSkirtBones(armature)

	for _, boneName := range []string{"EyeTracker", "Eye.L", "Eye.R"} {
		if err := armature.AssignToGroup(boneName, "Torso"); err == nil {
			assigned++
		}
	}
	return assigned
}

// assignHairGroups は髪ボーンをチェーン長で Hair 1 / Hair 2 に振り分ける。
func assignHairGroups(armature *model.Armature) int {
	assigned := 0
	for _, bone := range armature.Bones.Values() {
		if !strings.Contains(bone.Name(), "Hair") {
			continue
		}
		groupName := "Hair 1"
		if hairChainLength(armature, bone) >= hairLongChainMinLength {
			groupName = "Hair 2"
		}
		unlockBoneTransforms(bone)
		if err := armature.AssignToGroup(bone.Name(), groupName); err == nil {
			assigned++
		}
	}
	return assigned
}

// hairChainLength はボーンが属する髪チェーンの全長を返す。
func hairChainLength(armature *model.Armature, bone *model.Bone) int {
	root := bone
	for {
		parent, err := armature.Bones.Get(root.ParentIndex)
		if err != nil || !strings.Contains(parent.Name(), "Hair") {
			break
		}
		root = parent
	}
	length := 1
	current := root
	for {
		next := (*model.Bone)(nil)
		for _, childIndex := range armature.ChildIndexes(current.Index()) {
			child, err := armature.Bones.Get(childIndex)
			if err == nil && strings.Contains(child.Name(), "Hair") {
				next = child
				break
			}
		}
		if next == nil {
			break
		}
		current = next
		length++
	}
	return length
}

// assignKeywordGroups は名前部分一致の振り分け規則を適用する。
func assignKeywordGroups(armature *model.Armature) int {
	assigned := 0
	for _, bone := range armature.Bones.Values() {
		if _, grouped := armature.GroupOf(bone.Name()); grouped {
			continue
		}
		for _, rule := range keywordGroupRules {
			if !strings.Contains(bone.Name(), rule.Keyword) {
				continue
			}
			unlockBoneTransforms(bone)
			if err := armature.AssignToGroup(bone.Name(), rule.GroupName); err == nil {
				assigned++
			}
			break
		}
	}
	return assigned
}

// separateSkirtBones は腰回り直下の布ボーンをスカートグループへ移す。
func separateSkirtBones(armature *model.Armature) int {
	moved := 0
	for _, bone := range armature.Bones.Values() {
		if !strings.Contains(bone.Name(), "Piao") {
			continue
		}
		parent, err := armature.Bones.Get(bone.ParentIndex)
		if err != nil {
			continue
		}
		isWaistChild := false
		for _, keyword := range waistBoneKeywords {
			if strings.Contains(parent.Name(), keyword) {
				isWaistChild = true
				break
			}
		}
		if !isWaistChild {
			continue
		}
		unlockBoneTransforms(bone)
		if err := armature.AssignToGroup(bone.Name(), "Skirt"); err == nil {
			moved++
		}
	}
	return moved
}

// assignThemes はグループ由来と個別指定のパレットを適用する。
func assignThemes(armature *model.Armature) {
	for groupName, theme := range groupThemeCatalog {
		for _, boneName := range armature.GroupMembers(groupName) {
			if bone, err := armature.Bones.GetByName(boneName); err == nil {
				bone.ColorTheme = theme
			}
		}
	}
	for boneName, theme := range boneThemeAssignments {
		if bone, err := armature.Bones.GetByName(boneName); err == nil {
			bone.ColorTheme = theme
		}
	}
}

// unlockBoneTransforms は振り分け対象ボーンの変形ロックを全解除する。
func unlockBoneTransforms(bone *model.Bone) {
	bone.LockLocation = false
	bone.LockRotation = false
	bone.LockScale = false
}
