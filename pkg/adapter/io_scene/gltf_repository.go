// 指示: miu200521358
// Package io_scene はシーンスナップショットの読み込み実装を提供する。
package io_scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/sirupsen/logrus"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

// defaultBoneTailLength は子を持たないジョイントのテール長。
const defaultBoneTailLength = 0.05

// GltfSceneRepository はglTF/GLB形式シーンの読み込み契約を表す。
type GltfSceneRepository struct{}

// NewGltfSceneRepository はGltfSceneRepositoryを生成する。
func NewGltfSceneRepository() *GltfSceneRepository {
	return &GltfSceneRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *GltfSceneRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".glb") || strings.EqualFold(ext, ".gltf")
}

// InferName はパスから表示名を推定する。
func (r *GltfSceneRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はglTFシーンからキャラクターアセットを構築する。
// 回転・スケールは恒常姿勢前提で無視し、平行移動のみでジョイント位置を解決する。
func (r *GltfSceneRepository) Load(path string) (*model.CharacterAsset, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("対応していない拡張子です: %s", path)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "glTFの読み込みに失敗しました: %s", path)
	}

	asset := model.NewCharacterAsset(r.InferName(path))
	jointBoneNames, err := buildArmature(doc, asset.Armature)
	if err != nil {
		return nil, errors.Wrap(err, "アーマチュアの構築に失敗しました")
	}
	if err := buildMesh(doc, asset.Mesh, jointBoneNames); err != nil {
		return nil, errors.Wrap(err, "メッシュの構築に失敗しました")
	}

	logrus.Infof(
		"glTF読み込み完了: %s bones=%d vertices=%d faces=%d",
		asset.Name,
		asset.Armature.Bones.Len(),
		len(asset.Mesh.Vertices),
		len(asset.Mesh.Faces),
	)
	return asset, nil
}

// buildArmature はスキンのジョイント階層からボーン集合を構築し、
// ジョイント索引からボーン名への対応を返す。
func buildArmature(doc *gltf.Document, armature *model.Armature) (map[int]string, error) {
	jointBoneNames := map[int]string{}
	if len(doc.Skins) == 0 {
		return jointBoneNames, nil
	}
	skin := doc.Skins[0]

	parentNodes := map[int]int{}
	for nodeIndex, node := range doc.Nodes {
		for _, childIndex := range node.Children {
			parentNodes[int(childIndex)] = nodeIndex
		}
	}
	jointOrder := map[int]int{}
	for jointIndex, nodeIndex := range skin.Joints {
		jointOrder[int(nodeIndex)] = jointIndex
	}

	positions := map[int]mmath.Vec3{}
	for _, nodeIndex := range skin.Joints {
		positions[int(nodeIndex)] = globalTranslation(doc, parentNodes, int(nodeIndex))
	}

	for jointIndex, nodeIndex := range skin.Joints {
		node := doc.Nodes[nodeIndex]
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("Joint_%03d", jointIndex)
		}
		head := positions[int(nodeIndex)]
		tail := head.Added(mmath.Vec3{Y: defaultBoneTailLength})
		for _, childIndex := range node.Children {
			if _, isJoint := jointOrder[int(childIndex)]; isJoint {
				tail = positions[int(childIndex)]
				break
			}
		}
		bone := model.NewBone(name, head, tail)
		if parentNode, hasParent := parentNodes[int(nodeIndex)]; hasParent {
			if parentJoint, parentIsJoint := jointOrder[parentNode]; parentIsJoint {
				bone.ParentIndex = parentJoint
			}
		}
		if err := armature.AppendBone(bone); err != nil {
			return nil, err
		}
		jointBoneNames[jointIndex] = name
	}
	return jointBoneNames, nil
}

// globalTranslation は平行移動のみを親へ畳み込んだ位置を返す。
func globalTranslation(doc *gltf.Document, parentNodes map[int]int, nodeIndex int) mmath.Vec3 {
	position := mmath.ZERO_VEC3
	current := nodeIndex
	for {
		node := doc.Nodes[current]
		position = position.Added(mmath.Vec3{
			X: float64(node.Translation[0]),
			Y: float64(node.Translation[1]),
			Z: float64(node.Translation[2]),
		})
		parent, hasParent := parentNodes[current]
		if !hasParent {
			return position
		}
		current = parent
	}
}

// buildMesh は全プリミティブの頂点・面・スキンウェイトを1メッシュへ集約する。
func buildMesh(doc *gltf.Document, mesh *model.Mesh, jointBoneNames map[int]string) error {
	for _, material := range doc.Materials {
		mesh.MaterialNames = append(mesh.MaterialNames, material.Name)
	}

	for _, gltfMesh := range doc.Meshes {
		for _, primitive := range gltfMesh.Primitives {
			if err := appendPrimitive(doc, mesh, jointBoneNames, primitive); err != nil {
				return errors.Wrapf(err, "プリミティブの変換に失敗しました: %s", gltfMesh.Name)
			}
		}
	}
	return nil
}

// appendPrimitive は1プリミティブを頂点索引を詰め替えながら追記する。
func appendPrimitive(
	doc *gltf.Document,
	mesh *model.Mesh,
	jointBoneNames map[int]string,
	primitive *gltf.Primitive,
) error {
	positionAccessor, hasPosition := primitive.Attributes["POSITION"]
	if !hasPosition || primitive.Indices == nil {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[positionAccessor], nil)
	if err != nil {
		return errors.Wrap(err, "頂点位置の読み込みに失敗しました")
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
	if err != nil {
		return errors.Wrap(err, "面索引の読み込みに失敗しました")
	}

	vertexOffset := len(mesh.Vertices)
	for _, position := range positions {
		mesh.Vertices = append(mesh.Vertices, &model.Vertex{
			Position: mmath.Vec3{
				X: float64(position[0]),
				Y: float64(position[1]),
				Z: float64(position[2]),
			},
		})
	}

	materialIndex := 0
	if primitive.Material != nil {
		materialIndex = int(*primitive.Material)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, &model.Face{
			VertexIndexes: []int{
				vertexOffset + int(indices[i]),
				vertexOffset + int(indices[i+1]),
				vertexOffset + int(indices[i+2]),
			},
			MaterialIndex: materialIndex,
		})
	}

	return appendSkinWeights(doc, mesh, jointBoneNames, primitive, vertexOffset)
}

// appendSkinWeights はJOINTS/WEIGHTS属性をボーン名別ウェイトグループへ展開する。
func appendSkinWeights(
	doc *gltf.Document,
	mesh *model.Mesh,
	jointBoneNames map[int]string,
	primitive *gltf.Primitive,
	vertexOffset int,
) error {
	jointsAccessor, hasJoints := primitive.Attributes["JOINTS_0"]
	weightsAccessor, hasWeights := primitive.Attributes["WEIGHTS_0"]
	if !hasJoints || !hasWeights {
		return nil
	}
	joints, err := modeler.ReadJoints(doc, doc.Accessors[jointsAccessor], nil)
	if err != nil {
		return errors.Wrap(err, "ジョイント索引の読み込みに失敗しました")
	}
	weights, err := modeler.ReadWeights(doc, doc.Accessors[weightsAccessor], nil)
	if err != nil {
		return errors.Wrap(err, "スキンウェイトの読み込みに失敗しました")
	}
	if len(joints) != len(weights) {
		return fmt.Errorf("ジョイントとウェイトの件数が一致しません: %d != %d", len(joints), len(weights))
	}

	for vertexIndex := range joints {
		for influence := 0; influence < 4; influence++ {
			weight := float64(weights[vertexIndex][influence])
			if weight <= 0 {
				continue
			}
			boneName, known := jointBoneNames[int(joints[vertexIndex][influence])]
			if !known {
				continue
			}
			group, err := mesh.EnsureWeightGroup(boneName)
			if err != nil {
				return err
			}
			group.Weights[vertexOffset+vertexIndex] += weight
		}
	}
	return nil
}
