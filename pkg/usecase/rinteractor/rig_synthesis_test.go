// 指示: miu200521358
package rinteractor

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

func TestDeriveHeelBonesRotatesToeOntoFootPlane(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	foot := appendBoneAt(t, asset, "ORG-foot.L", mmath.Vec3{X: 0.1, Y: 0.08}, mmath.Vec3{X: 0.1, Y: 0.02, Z: 0.1})
	appendBoneAt(t, asset, "ORG-toe_ik.L", mmath.Vec3{X: 0.1, Y: 0.02, Z: 0.1}, mmath.Vec3{X: 0.1, Y: 0.02, Z: 0.18})

	report := &SetupReport{}
	derived := deriveHeelBones(asset.Armature, report)
	if derived != 1 {
		t.Fatalf("derived count mismatch: %d", derived)
	}
	heel := mustBone(t, asset, "heel.02.L")
	if math.Abs(heel.Head.Y-foot.Head.Y) > 1e-9 || math.Abs(heel.Tail.Y-foot.Head.Y) > 1e-9 {
		t.Fatalf("heel should sit at foot height: head=%v tail=%v", heel.Head, heel.Tail)
	}
	if heel.ParentIndex != foot.Index() {
		t.Fatalf("heel parent mismatch: %d", heel.ParentIndex)
	}
	// +Z向きのつま先を+90度倒すと+X側へ回る。
	if heel.Tail.X <= heel.Head.X {
		t.Fatalf("left heel should rotate outward: head=%v tail=%v", heel.Head, heel.Tail)
	}

	// 右足は情報不足なので見送りとして報告される。
	skipped := report.Skipped()
	if len(skipped) != 1 || skipped[0].WarningID != model.RigWarningHeelSourceMissing {
		t.Fatalf("missing right side should be reported: %+v", skipped)
	}
}

func TestDeriveHeelBonesSkipsExisting(t *testing.T) {
	asset := newTestAsset(t, "heel.02.L", "heel.02.R")
	report := &SetupReport{}
	if derived := deriveHeelBones(asset.Armature, report); derived != 0 {
		t.Fatalf("existing heels should not be derived again: %d", derived)
	}
	for _, result := range report.Derivations {
		if result.Reason != "already_exists" {
			t.Fatalf("skip reason mismatch: %+v", result)
		}
	}
}

func TestDeriveToeFKBonesLinksFKChain(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	orgToe := appendBoneAt(t, asset, "ORG-toe_ik.L", mmath.Vec3{Y: 0.02}, mmath.Vec3{Y: 0.02, Z: 0.08})
	footFK := appendBoneAt(t, asset, "foot_fk.L", mmath.Vec3{Y: 0.08}, mmath.Vec3{Y: 0.02})

	derived := deriveToeFKBones(asset.Armature, &SetupReport{})
	if derived != 1 {
		t.Fatalf("derived count mismatch: %d", derived)
	}
	toeFK := mustBone(t, asset, "toe_fk.L")
	if toeFK.ParentIndex != footFK.Index() || !toeFK.Connected {
		t.Fatalf("toe_fk should connect to foot_fk: parent=%d connected=%t", toeFK.ParentIndex, toeFK.Connected)
	}
	if orgToe.Props["fk_rotation_source"] != "toe_fk.L" {
		t.Fatalf("rotation source prop mismatch: %v", orgToe.Props["fk_rotation_source"])
	}
	if orgToe.Props["ik_fk_property_bone"] != "thigh_parent.L" {
		t.Fatalf("property bone prop mismatch: %v", orgToe.Props["ik_fk_property_bone"])
	}
}

func TestDeriveNeckHeadTweaksSplicesNewParent(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	appendBoneAt(t, asset, "ORG-Spine2", mmath.Vec3{Y: 1.2}, mmath.Vec3{Y: 1.3})
	neck := appendBoneAt(t, asset, "ORG-neck", mmath.Vec3{Y: 1.3}, mmath.Vec3{Y: 1.4})
	neck.ParentIndex = 0
	neck.Connected = true

	derived := deriveNeckHeadTweaks(asset.Armature, &SetupReport{})
	if derived != 1 {
		t.Fatalf("derived count mismatch: %d", derived)
	}
	if neck.Name() != "Bip001Neck" {
		t.Fatalf("source should take canonical name: %s", neck.Name())
	}
	tweak := mustBone(t, asset, "Bip001Neck._fk")
	if math.Abs(tweak.Length()-tweakBoneLength) > 1e-9 {
		t.Fatalf("tweak length mismatch: %f", tweak.Length())
	}
	if math.Abs(tweak.Tail.Z-tweak.Head.Z) > 1e-9 {
		t.Fatalf("tweak should be flattened: head=%v tail=%v", tweak.Head, tweak.Tail)
	}
	if tweak.ParentIndex != 0 {
		t.Fatalf("tweak should inherit original parent: %d", tweak.ParentIndex)
	}
	if neck.ParentIndex != tweak.Index() || neck.Connected {
		t.Fatalf("source should hang from tweak: parent=%d connected=%t", neck.ParentIndex, neck.Connected)
	}
}

func TestDeriveEyeTrackerBonesPlacesTrackerAndEyes(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	head := appendBoneAt(t, asset, "ORG-head", mmath.Vec3{Y: 1.5}, mmath.Vec3{Y: 1.6})

	derived := deriveEyeTrackerBones(asset.Armature, &SetupReport{})
	if derived != 3 {
		t.Fatalf("derived count mismatch: %d", derived)
	}
	tracker := mustBone(t, asset, "EyeTracker")
	if math.Abs(tracker.Head.Y-(head.Head.Y-eyeTrackerForwardOffset)) > 1e-9 {
		t.Fatalf("tracker forward offset mismatch: %v", tracker.Head)
	}
	if math.Abs(tracker.Head.Z-eyeTrackerLift) > 1e-9 {
		t.Fatalf("tracker lift mismatch: %v", tracker.Head)
	}
	if tracker.ParentIndex != head.Index() {
		t.Fatalf("tracker parent mismatch: %d", tracker.ParentIndex)
	}
	left := mustBone(t, asset, "Eye.L")
	right := mustBone(t, asset, "Eye.R")
	if math.Abs(left.Head.X-eyeSideOffset) > 1e-9 || math.Abs(right.Head.X+eyeSideOffset) > 1e-9 {
		t.Fatalf("eye side offsets mismatch: %v %v", left.Head, right.Head)
	}
	if left.ParentIndex != tracker.Index() || right.ParentIndex != tracker.Index() {
		t.Fatalf("eyes should hang from tracker")
	}
}

func TestDeriveEyeTrackerBonesWithoutHeadWarns(t *testing.T) {
	asset := newTestAsset(t, "Bip001Pelvis")
	report := &SetupReport{}
	if derived := deriveEyeTrackerBones(asset.Armature, report); derived != 0 {
		t.Fatalf("no head should derive nothing: %d", derived)
	}
	if len(report.WarningIDs) != 1 || report.WarningIDs[0] != model.RigWarningEyeTrackerSourceMissing {
		t.Fatalf("warning mismatch: %v", report.WarningIDs)
	}
}

func TestSeedIKPropertiesAndOrgDeform(t *testing.T) {
	asset := newTestAsset(t, "upper_arm_parent.L", "ORG-upper_arm.L", "hand_fk.L")
	seedIKProperties(asset.Armature)
	parent := mustBone(t, asset, "upper_arm_parent.L")
	if parent.Props["IK_Stretch"] != 0.0 || parent.Props["pole_vector"] != true {
		t.Fatalf("ik props mismatch: %v", parent.Props)
	}

	enabled := enableOrgDeform(asset.Armature)
	if enabled != 1 {
		t.Fatalf("deform count mismatch: %d", enabled)
	}
	if !mustBone(t, asset, "ORG-upper_arm.L").Deform {
		t.Fatalf("ORG bone should deform")
	}
	if mustBone(t, asset, "hand_fk.L").Deform {
		t.Fatalf("control bone should not deform")
	}
}

func TestClampLongBones(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	long := appendBoneAt(t, asset, "Weapon_Case_L", mmath.Vec3{Y: 1.0}, mmath.Vec3{Y: 3.5})
	short := appendBoneAt(t, asset, "hand_fk.L", mmath.Vec3{Y: 1.0}, mmath.Vec3{Y: 1.1})

	clamped := clampLongBones(asset.Armature)
	if clamped != 1 {
		t.Fatalf("clamped count mismatch: %d", clamped)
	}
	if math.Abs(long.Length()-longBoneClampedLength) > 1e-9 {
		t.Fatalf("long bone should be clamped: %f", long.Length())
	}
	if math.Abs(short.Length()-0.1) > 1e-9 {
		t.Fatalf("short bone should be untouched: %f", short.Length())
	}
}

func TestAssignBoneGroupsByCatalogAndKeywords(t *testing.T) {
	asset := newTestAsset(t,
		"torso", "hand_ik.L", "Weapon_Case_L", "Piao_A1", "Bone_Tail_01", "EyeTracker",
	)

	assignBoneGroups(asset.Armature)

	if groupName, _ := asset.Armature.GroupOf("torso"); groupName != "Torso" {
		t.Fatalf("torso group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("hand_ik.L"); groupName != "Arm.L (IK)" {
		t.Fatalf("hand_ik group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("Weapon_Case_L"); groupName != "Others" {
		t.Fatalf("weapon group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("Piao_A1"); groupName != "Cloth" {
		t.Fatalf("cloth group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("Bone_Tail_01"); groupName != "Breast / Tail" {
		t.Fatalf("tail group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("EyeTracker"); groupName != "Torso" {
		t.Fatalf("eye tracker group mismatch: %s", groupName)
	}

	torsoGroup, exists := asset.Armature.Group("Torso")
	if !exists || !torsoGroup.Visible || torsoGroup.UIRow != 1 {
		t.Fatalf("torso group spec mismatch: %+v", torsoGroup)
	}
	tweakGroup, exists := asset.Armature.Group("Torso (Tweak)")
	if !exists || tweakGroup.Visible {
		t.Fatalf("tweak group should be hidden: %+v", tweakGroup)
	}
}

func TestAssignHairGroupsSplitsByChainLength(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	short1 := appendBoneAt(t, asset, "Bone_Hair_A1", mmath.Vec3{Y: 1.5}, mmath.Vec3{Y: 1.45})
	short2 := appendBoneAt(t, asset, "Bone_Hair_A2", mmath.Vec3{Y: 1.45}, mmath.Vec3{Y: 1.4})
	short2.ParentIndex = short1.Index()
	previous := (*model.Bone)(nil)
	for _, name := range []string{"Bone_Hair_B1", "Bone_Hair_B2", "Bone_Hair_B3", "Bone_Hair_B4"} {
		bone := appendBoneAt(t, asset, name, mmath.Vec3{Y: 1.5}, mmath.Vec3{Y: 1.45})
		if previous != nil {
			bone.ParentIndex = previous.Index()
		}
		previous = bone
	}

	assignBoneGroups(asset.Armature)
	if groupName, _ := asset.Armature.GroupOf("Bone_Hair_A1"); groupName != "Hair 1" {
		t.Fatalf("short chain group mismatch: %s", groupName)
	}
	if groupName, _ := asset.Armature.GroupOf("Bone_Hair_B3"); groupName != "Hair 2" {
		t.Fatalf("long chain group mismatch: %s", groupName)
	}
}

func TestSeparateSkirtBonesUnderWaist(t *testing.T) {
	asset := model.NewCharacterAsset("synth")
	pelvis := appendBoneAt(t, asset, "Bip001Pelvis", mmath.Vec3{Y: 0.9}, mmath.Vec3{Y: 1.0})
	skirt := appendBoneAt(t, asset, "Piao_Front1", mmath.Vec3{Y: 0.9}, mmath.Vec3{Y: 0.7})
	skirt.ParentIndex = pelvis.Index()
	skirt.LockRotation = true

	assignBoneGroups(asset.Armature)
	if groupName, _ := asset.Armature.GroupOf("Piao_Front1"); groupName != "Skirt" {
		t.Fatalf("waist child should go to skirt: %s", groupName)
	}
	if skirt.LockRotation {
		t.Fatalf("grouped bone should be unlocked")
	}
}

func TestAssignThemes(t *testing.T) {
	asset := newTestAsset(t, "torso", "hand_ik.L", "EyeTracker", "toe_fk.L")
	assignBoneGroups(asset.Armature)
	assignThemes(asset.Armature)

	if mustBone(t, asset, "hand_ik.L").ColorTheme != "THEME01" {
		t.Fatalf("ik theme mismatch: %s", mustBone(t, asset, "hand_ik.L").ColorTheme)
	}
	if mustBone(t, asset, "torso").ColorTheme != "THEME09" {
		t.Fatalf("torso theme mismatch: %s", mustBone(t, asset, "torso").ColorTheme)
	}
	// 個別指定はグループ由来より優先される。
	if mustBone(t, asset, "EyeTracker").ColorTheme != "THEME01" {
		t.Fatalf("eye tracker theme mismatch: %s", mustBone(t, asset, "EyeTracker").ColorTheme)
	}
	if mustBone(t, asset, "toe_fk.L").ColorTheme != "THEME03" {
		t.Fatalf("toe theme mismatch: %s", mustBone(t, asset, "toe_fk.L").ColorTheme)
	}
}
