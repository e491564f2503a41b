// 指示: miu200521358
package rinteractor

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

const (
	// eyeMaterialKeyword は目領域材質を特定する部分一致キーワード。
	eyeMaterialKeyword = "Eye"
	// eyeHubDegreeThreshold はこの次数を超える頂点を中心シードと見なすしきい値。
	eyeHubDegreeThreshold = 10
	// eyeNeighborDepth はシードからの到達半径(辺数)。
	eyeNeighborDepth = 4
	// eyeDeltaScale は分割時に差分へ掛ける倍率。
	eyeDeltaScale = 2.0
	// eyeRegionOffsetY は領域種別ごとの奥行き逃がし量。
	eyeRegionOffsetY = 0.001
)

// eyeSplitSourceMorphNames は左右分割する瞳モーフ名を表す。
var eyeSplitSourceMorphNames = []string{"Pupil_R", "Pupil_L", "Pupil_Up", "Pupil_Down"}

// eyeRegion は目領域内での頂点分類を表す。
type eyeRegion int

const (
	// eyeRegionConnected は中心シードから到達可能な頂点。
	eyeRegionConnected eyeRegion = iota
	// eyeRegionMovable は未到達かつ境界でない頂点。
	eyeRegionMovable
	// eyeRegionBorder は開境界上の頂点。
	eyeRegionBorder
)

// eyeSplitSummary は瞳モーフ分割の集計を表す。
type eyeSplitSummary struct {
	MaterialName   string
	RegionVertices int
	ConnectedCount int
	MovableCount   int
	BorderCount    int
	SplitMorphs    int
}

// applyEyeMorphSplit は目材質の面から頂点領域を分類し、瞳モーフを左右へ分割する。
func applyEyeMorphSplit(asset *model.CharacterAsset, report *SetupReport) eyeSplitSummary {
	summary := eyeSplitSummary{}
	if asset == nil || asset.Mesh == nil || asset.Mesh.Morphs == nil {
		if report != nil {
			report.append(DerivationResult{Name: "eye_morph_split", Status: DerivationStatusSkipped, Reason: "mesh_missing"})
		}
		return summary
	}
	mesh := asset.Mesh

	materialIndex, materialName, found := findEyeMaterial(mesh)
	if !found {
		logrus.Warn("目材質が見つからないため瞳モーフ分割を見送ります")
		if report != nil {
			report.append(DerivationResult{
				Name:      "eye_morph_split",
				Status:    DerivationStatusSkipped,
				Reason:    "eye_material_missing",
				WarningID: model.RigWarningEyeMaterialMissing,
			})
		}
		return summary
	}
	summary.MaterialName = materialName

	regions := classifyEyeRegions(mesh, materialIndex)
	summary.RegionVertices = len(regions)
	for _, region := range regions {
		switch region {
		case eyeRegionConnected:
			summary.ConnectedCount++
		case eyeRegionMovable:
			summary.MovableCount++
		case eyeRegionBorder:
			summary.BorderCount++
		}
	}

	for _, sourceName := range eyeSplitSourceMorphNames {
		source, err := mesh.Morphs.GetByName(sourceName)
		if err != nil {
			if report != nil {
				report.append(DerivationResult{
					Name:      sourceName,
					Status:    DerivationStatusSkipped,
					Reason:    "source_morph_missing",
					WarningID: model.RigWarningMorphSplitSourceMissing,
				})
			}
			continue
		}
		if mesh.Morphs.Contains(sourceName+leftSuffix) || mesh.Morphs.Contains(sourceName+rightSuffix) {
			if report != nil {
				report.append(DerivationResult{Name: sourceName, Status: DerivationStatusSkipped, Reason: "already_split"})
			}
			continue
		}
		splitMorphSideways(mesh, source, regions)
		summary.SplitMorphs++
		if report != nil {
			report.append(DerivationResult{Name: sourceName, Status: DerivationStatusApplied})
		}
	}

	logrus.Infof(
		"瞳モーフ分割完了: material=%s region=%d connected=%d movable=%d border=%d split=%d",
		summary.MaterialName,
		summary.RegionVertices,
		summary.ConnectedCount,
		summary.MovableCount,
		summary.BorderCount,
		summary.SplitMorphs,
	)
	return summary
}

// findEyeMaterial はキーワードを含む最初の材質を返す。
func findEyeMaterial(mesh *model.Mesh) (int, string, bool) {
	for index, name := range mesh.MaterialNames {
		if strings.Contains(name, eyeMaterialKeyword) {
			return index, name, true
		}
	}
	return -1, "", false
}

// classifyEyeRegions は目材質面の頂点を接続・可動・境界に分類する。
// 面の全頂点対を辺と見なし、1面にしか現れない辺を開境界とする。
func classifyEyeRegions(mesh *model.Mesh, materialIndex int) map[int]eyeRegion {
	adjacency := simple.NewUndirectedGraph()
	edgeFaceCounts := map[[2]int]int{}
	regionVertices := map[int]struct{}{}

	for _, face := range mesh.Faces {
		if face.MaterialIndex != materialIndex {
			continue
		}
		verts := face.VertexIndexes
		for i := 0; i < len(verts); i++ {
			regionVertices[verts[i]] = struct{}{}
			for j := i + 1; j < len(verts); j++ {
				vi, vj := verts[i], verts[j]
				if vi == vj {
					continue
				}
				ensureGraphNode(adjacency, vi)
				ensureGraphNode(adjacency, vj)
				if !adjacency.HasEdgeBetween(int64(vi), int64(vj)) {
					adjacency.SetEdge(adjacency.NewEdge(adjacency.Node(int64(vi)), adjacency.Node(int64(vj))))
				}
				edgeFaceCounts[sortedEdgeKey(vi, vj)]++
			}
		}
	}
	if len(regionVertices) == 0 {
		return map[int]eyeRegion{}
	}

	connected := collectHubReachableVertices(adjacency)

	border := map[int]struct{}{}
	for edge, count := range edgeFaceCounts {
		if count == 1 {
			border[edge[0]] = struct{}{}
			border[edge[1]] = struct{}{}
		}
	}

	regions := map[int]eyeRegion{}
	for vertexIndex := range regionVertices {
		if _, isConnected := connected[vertexIndex]; isConnected {
			regions[vertexIndex] = eyeRegionConnected
		} else if _, isBorder := border[vertexIndex]; isBorder {
			regions[vertexIndex] = eyeRegionBorder
		} else {
			regions[vertexIndex] = eyeRegionMovable
		}
	}
	return regions
}

// collectHubReachableVertices は高次数シードから半径内の頂点集合を返す。
func collectHubReachableVertices(adjacency *simple.UndirectedGraph) map[int]struct{} {
	connected := map[int]struct{}{}
	nodes := adjacency.Nodes()
	for nodes.Next() {
		node := nodes.Node()
		if adjacency.From(node.ID()).Len() <= eyeHubDegreeThreshold {
			continue
		}
		bfs := traverse.BreadthFirst{}
		bfs.Walk(adjacency, node, func(visited graph.Node, depth int) bool {
			if depth > eyeNeighborDepth {
				return true
			}
			connected[int(visited.ID())] = struct{}{}
			return false
		})
	}
	return connected
}

// splitMorphSideways は領域頂点の差分を倍化し、基準X符号で左右モーフへ書き分ける。
func splitMorphSideways(mesh *model.Mesh, source *model.Morph, regions map[int]eyeRegion) {
	leftMorph := model.NewMorph(source.Name() + leftSuffix)
	rightMorph := model.NewMorph(source.Name() + rightSuffix)

	for vertexIndex, region := range regions {
		if vertexIndex < 0 || vertexIndex >= len(mesh.Vertices) {
			continue
		}
		delta := source.Offsets[vertexIndex]
		offset := delta.MuledScalar(eyeDeltaScale)
		switch region {
		case eyeRegionConnected:
			offset.Y -= eyeRegionOffsetY
		case eyeRegionMovable:
			offset.Y += eyeRegionOffsetY
		}
		if mesh.Vertices[vertexIndex].Position.X >= 0 {
			leftMorph.Offsets[vertexIndex] = offset
		} else {
			rightMorph.Offsets[vertexIndex] = offset
		}
	}

	// Appendは空モーフでも行い、対の存在を保証する。
	_ = mesh.Morphs.Append(leftMorph)
	_ = mesh.Morphs.Append(rightMorph)
}

// ensureGraphNode は頂点索引のノードを必要なら追加する。
func ensureGraphNode(adjacency *simple.UndirectedGraph, vertexIndex int) {
	if adjacency.Node(int64(vertexIndex)) == nil {
		adjacency.AddNode(simple.Node(int64(vertexIndex)))
	}
}

// sortedEdgeKey は無向辺の正規化キーを返す。
func sortedEdgeKey(a int, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
