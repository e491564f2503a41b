// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// Quaternion は回転を表す。
type Quaternion quat.Number

// NewQuaternion は単位クォータニオンを返す。
func NewQuaternion() Quaternion {
	return Quaternion{Real: 1}
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)からクォータニオンを生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radian float64) Quaternion {
	normalized := axis.Normalized()
	if normalized.IsZero() {
		return NewQuaternion()
	}
	half := radian * 0.5
	sin := math.Sin(half)
	return Quaternion{
		Real: math.Cos(half),
		Imag: normalized.X * sin,
		Jmag: normalized.Y * sin,
		Kmag: normalized.Z * sin,
	}
}

// NewQuaternionFromDegrees はXYZオイラー角(度)からクォータニオンを生成する。
func NewQuaternionFromDegrees(degreeX float64, degreeY float64, degreeZ float64) Quaternion {
	qx := NewQuaternionFromAxisAngle(UNIT_X_VEC3, DegToRad(degreeX))
	qy := NewQuaternionFromAxisAngle(UNIT_Y_VEC3, DegToRad(degreeY))
	qz := NewQuaternionFromAxisAngle(UNIT_Z_VEC3, DegToRad(degreeZ))
	return qz.Muled(qy).Muled(qx)
}

// NewQuaternionRotate は from を to へ向ける最短弧クォータニオンを返す。
func NewQuaternionRotate(from Vec3, to Vec3) Quaternion {
	fromNorm := from.Normalized()
	toNorm := to.Normalized()
	if fromNorm.IsZero() || toNorm.IsZero() {
		return NewQuaternion()
	}
	dot := fromNorm.Dot(toNorm)
	if dot >= 1.0-vecEpsilon {
		return NewQuaternion()
	}
	if dot <= -1.0+vecEpsilon {
		// 正反対のベクトルは直交軸回りの180度回転で返す。
		orthogonal := fromNorm.Cross(UNIT_X_VEC3)
		if orthogonal.IsZero() {
			orthogonal = fromNorm.Cross(UNIT_Z_VEC3)
		}
		return NewQuaternionFromAxisAngle(orthogonal, math.Pi)
	}
	axis := fromNorm.Cross(toNorm)
	return NewQuaternionFromAxisAngle(axis, math.Acos(dot))
}

// Muled は q * other を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(other)))
}

// MulVec3 はベクトルをクォータニオンで回転する。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	rotated := quat.Mul(
		quat.Mul(quat.Number(q), quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}),
		quat.Conj(quat.Number(q)),
	)
	return Vec3{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// RotatedAroundX はX軸回りに角度(ラジアン)回転したベクトルを返す。
func RotatedAroundX(v Vec3, radian float64) Vec3 {
	return fromMgl(mgl64.Rotate3DX(radian).Mul3x1(toMgl(v)))
}

// RotatedAroundY はY軸回りに角度(ラジアン)回転したベクトルを返す。
func RotatedAroundY(v Vec3, radian float64) Vec3 {
	return fromMgl(mgl64.Rotate3DY(radian).Mul3x1(toMgl(v)))
}

// RotatedAroundZ はZ軸回りに角度(ラジアン)回転したベクトルを返す。
func RotatedAroundZ(v Vec3, radian float64) Vec3 {
	return fromMgl(mgl64.Rotate3DZ(radian).Mul3x1(toMgl(v)))
}

// toMgl は mgl64 ベクトルへ変換する。
func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// fromMgl は mgl64 ベクトルから変換する。
func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
