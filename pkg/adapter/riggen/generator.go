// 指示: miu200521358
// Package riggen は組み込みのコントロールリグ生成器を提供する。
// タグ付けされた骨格チェーンをFK/IK/微調整/変形の各階層へ展開する。
package riggen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const orgPrefix = "ORG-"

// rigTypeSpine は体幹チェーンの展開種別。
const rigTypeSpine = "spines.basic_spine"

// rigTypeArm は腕チェーンの展開種別。
const rigTypeArm = "limbs.arm"

// rigTypeLeg は脚チェーンの展開種別。
const rigTypeLeg = "limbs.leg"

// rigTypeFinger は指チェーンの展開種別。
const rigTypeFinger = "limbs.super_finger"

// rigTypeCopy は単純コピーの展開種別。
const rigTypeCopy = "basic.super_copy"

// RigGenerator は組み込みリグ生成器を表す。
type RigGenerator struct{}

// NewRigGenerator はRigGeneratorを生成する。
func NewRigGenerator() *RigGenerator {
	return &RigGenerator{}
}

// Generate はアーマチュアへコントロールリグ階層を展開する。
// 原本ボーンはORG接頭辞へ退避し、タグ種別ごとの制御ボーンを追加する。
func (g *RigGenerator) Generate(asset *model.CharacterAsset) error {
	if asset == nil || asset.Armature == nil || asset.Armature.Bones == nil {
		return fmt.Errorf("リグ生成対象のアーマチュアがありません")
	}
	armature := asset.Armature
	if armature.Bones.Len() == 0 {
		return fmt.Errorf("リグ生成対象のボーンがありません")
	}

	originals := armature.Bones.Values()
	if err := prefixOriginalBones(armature, originals); err != nil {
		return errors.Wrap(err, "原本ボーンの退避に失敗しました")
	}

	if err := appendRootBone(armature); err != nil {
		return errors.Wrap(err, "ルートボーンの生成に失敗しました")
	}

	expanded := 0
	for _, bone := range originals {
		switch bone.RigType {
		case rigTypeSpine:
			expanded += expandSpineChain(armature, bone)
		case rigTypeArm:
			expanded += expandLimbChain(armature, bone, armLimbNaming)
		case rigTypeLeg:
			expanded += expandLimbChain(armature, bone, legLimbNaming)
		case rigTypeFinger:
			expanded += expandFingerChain(armature, bone)
		case rigTypeCopy:
			expanded += expandCopyBone(armature, bone)
		}
	}

	logrus.Infof("組み込みリグ生成完了: bones=%d expanded=%d", armature.Bones.Len(), expanded)
	return nil
}

// prefixOriginalBones は全原本ボーンへORG接頭辞を付けて退避する。
func prefixOriginalBones(armature *model.Armature, originals []*model.Bone) error {
	for _, bone := range originals {
		oldName := bone.Name()
		if strings.HasPrefix(oldName, orgPrefix) {
			continue
		}
		if _, err := armature.Bones.Rename(bone.Index(), orgPrefix+oldName); err != nil {
			return err
		}
		armature.RenameGroupMember(oldName, orgPrefix+oldName)
	}
	return nil
}

// appendRootBone は原点のルートボーンを追加する。
func appendRootBone(armature *model.Armature) error {
	if armature.Bones.Contains("root") {
		return nil
	}
	root := model.NewBone("root", mmath.ZERO_VEC3, mmath.Vec3{Y: 0.3})
	return armature.AppendBone(root)
}

// cloneControlBone は原本の形状を引き継ぐ制御ボーンを生成する。
func cloneControlBone(name string, source *model.Bone) *model.Bone {
	control := model.NewBone(name, source.Head, source.Tail)
	control.Roll = source.Roll
	control.ParentIndex = source.ParentIndex
	control.WidgetType = source.WidgetType
	props := map[string]any{}
	if err := deepcopy.Copy(&props, source.Props); err == nil {
		control.Props = props
	}
	return control
}

// appendControl は制御ボーンを追加する。既存名は見送り nil を返す。
func appendControl(armature *model.Armature, control *model.Bone) *model.Bone {
	if armature.Bones.Contains(control.Name()) {
		return nil
	}
	if err := armature.AppendBone(control); err != nil {
		return nil
	}
	return control
}

// chainChild はORGボーンの最初のORG子ボーンを返す。
func chainChild(armature *model.Armature, parent *model.Bone) (*model.Bone, bool) {
	for _, childIndex := range armature.ChildIndexes(parent.Index()) {
		child, err := armature.Bones.Get(childIndex)
		if err == nil && strings.HasPrefix(child.Name(), orgPrefix) {
			return child, true
		}
	}
	return nil, false
}

// controlName はORG接頭辞を剥がした制御ボーン名を返す。
func controlName(orgBone *model.Bone) string {
	return strings.TrimPrefix(orgBone.Name(), orgPrefix)
}

// sideSuffix は側性接尾辞を返す。側性が無ければ空文字。
func sideSuffix(name string) string {
	if strings.HasSuffix(name, ".L") {
		return ".L"
	}
	if strings.HasSuffix(name, ".R") {
		return ".R"
	}
	return ""
}

// expandSpineChain は骨盤タグから体幹制御階層を展開する。
func expandSpineChain(armature *model.Armature, pelvis *model.Bone) int {
	expanded := 0
	chain := collectChain(armature, pelvis, 4)

	// 体幹の大制御。骨盤形状を基準にする。
	for _, name := range []string{"torso", "hips", "chest"} {
		if control := appendControl(armature, cloneControlBone(name, pelvis)); control != nil {
			expanded++
		}
	}

	for _, orgBone := range chain {
		base := controlName(orgBone)
		if control := appendControl(armature, cloneControlBone(base+"_fk", orgBone)); control != nil {
			expanded++
		}
		if control := appendControl(armature, cloneControlBone("tweak_"+base, orgBone)); control != nil {
			expanded++
		}
	}
	if len(chain) > 0 {
		last := chain[len(chain)-1]
		tail := model.NewBone("tweak_"+controlName(last)+".001", last.Tail, last.Tail.Added(last.Direction().Normalized().MuledScalar(0.05)))
		tail.ParentIndex = last.Index()
		if control := appendControl(armature, tail); control != nil {
			expanded++
		}
	}
	if neck, err := armature.Bones.GetByName(orgPrefix + "neck"); err == nil {
		if control := appendControl(armature, cloneControlBone("tweak_neck", neck)); control != nil {
			expanded++
		}
	}
	return expanded
}

// limbNaming は四肢チェーンの展開名を表す。
type limbNaming struct {
	ParentName string
	IKName     string
	IKTarget   string
	VisPole    string
	EndIKNames []string
	Segments   int
}

// armLimbNaming は腕チェーンの展開名を返す。
func armLimbNaming(suffix string) limbNaming {
	return limbNaming{
		ParentName: "upper_arm_parent" + suffix,
		IKName:     "upper_arm_ik" + suffix,
		IKTarget:   "upper_arm_ik_target" + suffix,
		VisPole:    "VIS_upper_arm_ik_pole" + suffix,
		EndIKNames: []string{"hand_ik" + suffix},
		Segments:   3,
	}
}

// legLimbNaming は脚チェーンの展開名を返す。
func legLimbNaming(suffix string) limbNaming {
	return limbNaming{
		ParentName: "thigh_parent" + suffix,
		IKName:     "thigh_ik" + suffix,
		IKTarget:   "thigh_ik_target" + suffix,
		VisPole:    "VIS_thigh_ik_pole" + suffix,
		EndIKNames: []string{"foot_ik" + suffix, "foot_heel_ik" + suffix, "foot_spin_ik" + suffix, "toe_ik" + suffix},
		Segments:   4,
	}
}

// expandLimbChain は四肢タグからFK/IK/微調整/変形の各階層を展開する。
func expandLimbChain(armature *model.Armature, rootBone *model.Bone, naming func(string) limbNaming) int {
	expanded := 0
	suffix := sideSuffix(controlName(rootBone))
	names := naming(suffix)
	chain := collectChain(armature, rootBone, names.Segments)
	if len(chain) < 2 {
		logrus.Warnf("四肢チェーンが短いため展開を見送ります: %s", rootBone.Name())
		return 0
	}

	parent := cloneControlBone(names.ParentName, rootBone)
	parent.Props["IK_FK"] = 0.0
	if control := appendControl(armature, parent); control != nil {
		expanded++
	}

	// FK列と微調整列。
	for _, orgBone := range chain {
		base := controlName(orgBone)
		if control := appendControl(armature, cloneControlBone(fkName(base, suffix), orgBone)); control != nil {
			expanded++
		}
	}
	for segmentIndex, orgBone := range chain {
		base := strings.TrimSuffix(controlName(orgBone), suffix)
		if control := appendControl(armature, cloneControlBone(base+"_tweak"+suffix, orgBone)); control != nil {
			expanded++
		}
		// 末端以外は中間微調整も持つ。
		if segmentIndex < len(chain)-1 && segmentIndex < 2 {
			mid := cloneControlBone(base+"_tweak"+suffix+".001", orgBone)
			mid.Head = orgBone.Head.Added(orgBone.Direction().MuledScalar(0.5))
			if control := appendControl(armature, mid); control != nil {
				expanded++
			}
		}
	}

	// IK列。
	if control := appendControl(armature, cloneControlBone(names.IKName, rootBone)); control != nil {
		expanded++
	}
	elbow := chain[1]
	target := cloneControlBone(names.IKTarget, elbow)
	target.Tail = target.Head.Added(elbow.Direction().Normalized().MuledScalar(0.05))
	if control := appendControl(armature, target); control != nil {
		expanded++
	}
	if control := appendControl(armature, cloneControlBone(names.VisPole, elbow)); control != nil {
		expanded++
	}
	for _, endName := range names.EndIKNames {
		end := chain[len(chain)-1]
		if len(chain) > 2 && !strings.Contains(endName, "toe") {
			end = chain[2]
		}
		if control := appendControl(armature, cloneControlBone(endName, end)); control != nil {
			expanded++
		}
	}

	// 変形列。上位2セグメントは前後半へ分割する。
	for segmentIndex, orgBone := range chain {
		base := strings.TrimSuffix(controlName(orgBone), suffix)
		if segmentIndex < 2 {
			mid := orgBone.Head.Added(orgBone.Direction().MuledScalar(0.5))
			front := model.NewBone("DEF-"+base+suffix, orgBone.Head, mid)
			front.ParentIndex = orgBone.Index()
			front.Deform = true
			if control := appendControl(armature, front); control != nil {
				expanded++
			}
			back := model.NewBone("DEF-"+base+suffix+".001", mid, orgBone.Tail)
			back.ParentIndex = orgBone.Index()
			back.Deform = true
			if control := appendControl(armature, back); control != nil {
				expanded++
			}
			continue
		}
		deform := model.NewBone("DEF-"+base+suffix, orgBone.Head, orgBone.Tail)
		deform.ParentIndex = orgBone.Index()
		deform.Deform = true
		if control := appendControl(armature, deform); control != nil {
			expanded++
		}
	}
	return expanded
}

// expandFingerChain は指タグから操作親と連結制御を展開する。
func expandFingerChain(armature *model.Armature, rootBone *model.Bone) int {
	expanded := 0
	base := controlName(rootBone)
	suffix := sideSuffix(base)
	stem := strings.TrimSuffix(base, suffix)

	master := cloneControlBone(stem+"_master"+suffix, rootBone)
	if control := appendControl(armature, master); control != nil {
		expanded++
	}

	chain := collectChain(armature, rootBone, 3)
	for _, orgBone := range chain {
		if control := appendControl(armature, cloneControlBone(controlName(orgBone), orgBone)); control != nil {
			expanded++
		}
	}
	if len(chain) > 0 {
		last := chain[len(chain)-1]
		end := model.NewBone(base+".001", last.Tail, last.Tail.Added(last.Direction().Normalized().MuledScalar(0.01)))
		end.ParentIndex = last.Index()
		if control := appendControl(armature, end); control != nil {
			expanded++
		}
	}
	return expanded
}

// expandCopyBone は単純コピータグから同名制御を展開する。
func expandCopyBone(armature *model.Armature, orgBone *model.Bone) int {
	if control := appendControl(armature, cloneControlBone(controlName(orgBone), orgBone)); control != nil {
		return 1
	}
	return 0
}

// collectChain はORGボーンから子方向へ最大長まで辿った列を返す。
func collectChain(armature *model.Armature, rootBone *model.Bone, maxLength int) []*model.Bone {
	chain := []*model.Bone{rootBone}
	current := rootBone
	for len(chain) < maxLength {
		child, found := chainChild(armature, current)
		if !found {
			break
		}
		chain = append(chain, child)
		current = child
	}
	return chain
}

// fkName はFK制御名を返す。側性接尾辞は語幹の後ろへ残す。
func fkName(base string, suffix string) string {
	return strings.TrimSuffix(base, suffix) + "_fk" + suffix
}
