// 指示: miu200521358
// Package mmath はボーン・頂点計算用の数学型を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// vecEpsilon はゼロベクトル判定の許容誤差。
	vecEpsilon = 1e-12
)

// Vec3 は3次元ベクトルを表す。
type Vec3 r3.Vec

// ZERO_VEC3 はゼロベクトル。
var ZERO_VEC3 = Vec3{X: 0, Y: 0, Z: 0}

// UNIT_X_VEC3 はX単位ベクトル。
var UNIT_X_VEC3 = Vec3{X: 1, Y: 0, Z: 0}

// UNIT_Y_VEC3 はY単位ベクトル。
var UNIT_Y_VEC3 = Vec3{X: 0, Y: 1, Z: 0}

// UNIT_Z_VEC3 はZ単位ベクトル。
var UNIT_Z_VEC3 = Vec3{X: 0, Y: 0, Z: 1}

// Added は v + other を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(other)))
}

// Subed は v - other を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// MuledScalar は v * scale を返す。
func (v Vec3) MuledScalar(scale float64) Vec3 {
	return Vec3(r3.Scale(scale, r3.Vec(v)))
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalized は正規化したベクトルを返す。長さゼロはゼロベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length <= vecEpsilon {
		return ZERO_VEC3
	}
	return Vec3(r3.Scale(1.0/length, r3.Vec(v)))
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(other))
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(v), r3.Vec(other)))
}

// IsZero は長さゼロ相当か判定する。
func (v Vec3) IsZero() bool {
	return v.Length() <= vecEpsilon
}

// AngleBetween は2ベクトルのなす角(ラジアン)を返す。
// どちらかが長さゼロの場合はπを返す。
func AngleBetween(v1 Vec3, v2 Vec3) float64 {
	if v1.IsZero() || v2.IsZero() {
		return math.Pi
	}
	cosine := r3.Cos(r3.Vec(v1), r3.Vec(v2))
	if cosine > 1.0 {
		cosine = 1.0
	} else if cosine < -1.0 {
		cosine = -1.0
	}
	return math.Acos(cosine)
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radian float64) float64 {
	return radian * 180.0 / math.Pi
}
