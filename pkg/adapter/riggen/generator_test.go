// 指示: miu200521358
package riggen

import (
	"testing"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

func appendChain(t *testing.T, armature *model.Armature, names []string) []*model.Bone {
	t.Helper()
	bones := []*model.Bone{}
	previous := (*model.Bone)(nil)
	for i, name := range names {
		head := mmath.Vec3{Y: 1.0 - float64(i)*0.2}
		tail := head.Added(mmath.Vec3{Y: -0.2})
		bone := model.NewBone(name, head, tail)
		if previous != nil {
			bone.ParentIndex = previous.Index()
		}
		if err := armature.AppendBone(bone); err != nil {
			t.Fatalf("append failed: %s: %v", name, err)
		}
		bones = append(bones, bone)
		previous = bone
	}
	return bones
}

func mustContain(t *testing.T, armature *model.Armature, names ...string) {
	t.Helper()
	for _, name := range names {
		if !armature.Bones.Contains(name) {
			t.Fatalf("bone should exist: %s", name)
		}
	}
}

func TestGenerateRejectsEmptyArmature(t *testing.T) {
	generator := NewRigGenerator()
	if err := generator.Generate(nil); err == nil {
		t.Fatalf("nil asset should fail")
	}
	if err := generator.Generate(model.NewCharacterAsset("empty")); err == nil {
		t.Fatalf("empty armature should fail")
	}
}

func TestGeneratePrefixesOriginalsAndAddsRoot(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	appendChain(t, asset.Armature, []string{"Pelvis", "Spine"})

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mustContain(t, asset.Armature, "ORG-Pelvis", "ORG-Spine", "root")
	if asset.Armature.Bones.Contains("Pelvis") {
		t.Fatalf("original name should be prefixed away")
	}
}

func TestGenerateExpandsSpineChain(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"Pelvis", "Spine", "Spine1", "Spine2", "neck"})
	bones[0].RigType = "spines.basic_spine"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mustContain(t, asset.Armature,
		"torso", "hips", "chest",
		"Pelvis_fk", "Spine_fk", "Spine1_fk", "Spine2_fk",
		"tweak_Pelvis", "tweak_Spine", "tweak_Spine1", "tweak_Spine2",
		"tweak_Spine2.001", "tweak_neck",
	)
}

func TestGenerateExpandsArmChain(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"upper_arm.L", "forearm.L", "hand.L"})
	bones[0].RigType = "limbs.arm"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mustContain(t, asset.Armature,
		"upper_arm_parent.L",
		"upper_arm_fk.L", "forearm_fk.L", "hand_fk.L",
		"upper_arm_tweak.L", "upper_arm_tweak.L.001",
		"forearm_tweak.L", "forearm_tweak.L.001", "hand_tweak.L",
		"upper_arm_ik.L", "upper_arm_ik_target.L", "VIS_upper_arm_ik_pole.L", "hand_ik.L",
		"DEF-upper_arm.L", "DEF-upper_arm.L.001",
		"DEF-forearm.L", "DEF-forearm.L.001", "DEF-hand.L",
	)

	parent, err := asset.Armature.Bones.GetByName("upper_arm_parent.L")
	if err != nil {
		t.Fatalf("parent bone missing: %v", err)
	}
	if parent.Props["IK_FK"] != 0.0 {
		t.Fatalf("IK_FK seed mismatch: %v", parent.Props["IK_FK"])
	}
	deform, err := asset.Armature.Bones.GetByName("DEF-upper_arm.L")
	if err != nil {
		t.Fatalf("deform bone missing: %v", err)
	}
	if !deform.Deform {
		t.Fatalf("DEF bone should deform")
	}
}

func TestGenerateExpandsLegChainWithFootIK(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"thigh.R", "shin.R", "foot.R", "toe_ik.R"})
	bones[0].RigType = "limbs.leg"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mustContain(t, asset.Armature,
		"thigh_parent.R",
		"thigh_fk.R", "shin_fk.R", "foot_fk.R",
		"thigh_ik.R", "thigh_ik_target.R", "VIS_thigh_ik_pole.R",
		"foot_ik.R", "foot_heel_ik.R", "foot_spin_ik.R",
	)

	// つま先IKはつま先形状、それ以外の足IKは足形状を写す。
	footIK, _ := asset.Armature.Bones.GetByName("foot_ik.R")
	orgFoot, _ := asset.Armature.Bones.GetByName("ORG-foot.R")
	if footIK.Head != orgFoot.Head {
		t.Fatalf("foot_ik should copy foot shape: %v != %v", footIK.Head, orgFoot.Head)
	}
	toeIK, _ := asset.Armature.Bones.GetByName("toe_ik.R")
	orgToe, _ := asset.Armature.Bones.GetByName("ORG-toe_ik.R")
	if toeIK.Head != orgToe.Head {
		t.Fatalf("toe_ik should copy toe shape: %v != %v", toeIK.Head, orgToe.Head)
	}
}

func TestGenerateExpandsFingerChain(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"f_index.01.L", "f_index.02.L", "f_index.03.L"})
	bones[0].RigType = "limbs.super_finger"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mustContain(t, asset.Armature,
		"f_index.01_master.L",
		"f_index.01.L", "f_index.02.L", "f_index.03.L",
		"f_index.01.L.001",
	)
}

func TestGenerateExpandsCopyBone(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"shoulder.L"})
	bones[0].RigType = "basic.super_copy"
	bones[0].WidgetType = "shoulder"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	control, err := asset.Armature.Bones.GetByName("shoulder.L")
	if err != nil {
		t.Fatalf("copy control missing: %v", err)
	}
	if control.WidgetType != "shoulder" {
		t.Fatalf("widget type should be inherited: %s", control.WidgetType)
	}
}

func TestGenerateSkipsShortLimbChain(t *testing.T) {
	asset := model.NewCharacterAsset("rig")
	bones := appendChain(t, asset.Armature, []string{"upper_arm.L"})
	bones[0].RigType = "limbs.arm"

	if err := NewRigGenerator().Generate(asset); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if asset.Armature.Bones.Contains("upper_arm_parent.L") {
		t.Fatalf("short chain should not expand")
	}
}
