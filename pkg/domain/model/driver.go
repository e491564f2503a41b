// 指示: miu200521358
package model

import (
	"fmt"

	"gopkg.in/Knetic/govaluate.v3"
)

// TransformChannel はボーンのローカル変換チャンネルを表す。
type TransformChannel string

const (
	// TransformChannelLocX はローカルX位置。
	TransformChannelLocX TransformChannel = "LOC_X"
	// TransformChannelLocY はローカルY位置。
	TransformChannelLocY TransformChannel = "LOC_Y"
	// TransformChannelLocZ はローカルZ位置。
	TransformChannelLocZ TransformChannel = "LOC_Z"
	// TransformChannelScaleX はローカルXスケール。
	TransformChannelScaleX TransformChannel = "SCALE_X"
	// TransformChannelScaleY はローカルYスケール。
	TransformChannelScaleY TransformChannel = "SCALE_Y"
)

// DriverInput はドライバー1入力(ボーンとチャンネル)を表す。
type DriverInput struct {
	BoneName string
	Channel  TransformChannel
	VarName  string
}

// DriverBinding はボーン変換からモーフ値への式バインディングを表す。
type DriverBinding struct {
	TargetMorph string
	Inputs      []DriverInput
	Formula     string

	compiled *govaluate.EvaluableExpression
}

// NewDriverBinding は式を検証済みのバインディングを生成する。
// 式は登録時に一度だけ構文解析され、評価はホスト側(またはテスト)が行う。
func NewDriverBinding(targetMorph string, inputs []DriverInput, formula string) (*DriverBinding, error) {
	functions := map[string]govaluate.ExpressionFunction{
		"max": func(args ...interface{}) (interface{}, error) {
			return foldFloats("max", args, func(acc float64, v float64) float64 {
				if v > acc {
					return v
				}
				return acc
			})
		},
		"min": func(args ...interface{}) (interface{}, error) {
			return foldFloats("min", args, func(acc float64, v float64) float64 {
				if v < acc {
					return v
				}
				return acc
			})
		},
	}
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(formula, functions)
	if err != nil {
		return nil, fmt.Errorf("ドライバー式の解析に失敗しました: %s: %w", formula, err)
	}
	binding := &DriverBinding{
		TargetMorph: targetMorph,
		Inputs:      inputs,
		Formula:     formula,
		compiled:    compiled,
	}
	if err := binding.validateVars(); err != nil {
		return nil, err
	}
	return binding, nil
}

// validateVars は式中の変数が入力名集合に含まれるか検証する。
func (b *DriverBinding) validateVars() error {
	declared := map[string]struct{}{}
	for _, input := range b.Inputs {
		declared[input.VarName] = struct{}{}
	}
	for _, varName := range b.compiled.Vars() {
		if _, exists := declared[varName]; !exists {
			return fmt.Errorf("ドライバー式が未宣言の変数を参照しています: %s in %s", varName, b.Formula)
		}
	}
	return nil
}

// ChannelSampler はボーンのローカルチャンネル値を読み取る関数を表す。
type ChannelSampler func(boneName string, channel TransformChannel) (float64, error)

// Evaluate は入力値を読み取り式を評価する。副作用は持たない。
func (b *DriverBinding) Evaluate(sampler ChannelSampler) (float64, error) {
	if sampler == nil {
		return 0, fmt.Errorf("チャンネル読み取りが未設定です")
	}
	params := map[string]interface{}{}
	for _, input := range b.Inputs {
		value, err := sampler(input.BoneName, input.Channel)
		if err != nil {
			return 0, err
		}
		params[input.VarName] = value
	}
	result, err := b.compiled.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("ドライバー式の評価に失敗しました: %s: %w", b.Formula, err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("ドライバー式がスカラー以外を返しました: %s: %T", b.Formula, result)
	}
	return value, nil
}

// foldFloats は可変長引数を左畳み込みする。
func foldFloats(name string, args []interface{}, fold func(float64, float64) float64) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s は引数が必要です", name)
	}
	acc, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("%s の引数がスカラーではありません: %T", name, args[0])
	}
	for _, arg := range args[1:] {
		value, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("%s の引数がスカラーではありません: %T", name, arg)
		}
		acc = fold(acc, value)
	}
	return acc, nil
}

// DriverSet は対象モーフごとに高々1件のバインディング集合を表す。
type DriverSet struct {
	bindings []*DriverBinding
	byTarget map[string]int
}

// NewDriverSet は空のドライバー集合を返す。
func NewDriverSet() *DriverSet {
	return &DriverSet{
		bindings: []*DriverBinding{},
		byTarget: map[string]int{},
	}
}

// Has は対象モーフにバインディングが存在するか判定する。
func (s *DriverSet) Has(targetMorph string) bool {
	if s == nil {
		return false
	}
	_, exists := s.byTarget[targetMorph]
	return exists
}

// Add はバインディングを登録する。既存対象への追加は登録せず false を返す。
func (s *DriverSet) Add(binding *DriverBinding) bool {
	if s == nil || binding == nil {
		return false
	}
	if _, exists := s.byTarget[binding.TargetMorph]; exists {
		return false
	}
	s.byTarget[binding.TargetMorph] = len(s.bindings)
	s.bindings = append(s.bindings, binding)
	return true
}

// Get は対象モーフのバインディングを返す。
func (s *DriverSet) Get(targetMorph string) (*DriverBinding, bool) {
	if s == nil {
		return nil, false
	}
	index, exists := s.byTarget[targetMorph]
	if !exists {
		return nil, false
	}
	return s.bindings[index], true
}

// Len は登録件数を返す。
func (s *DriverSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Values は登録順のバインディング一覧を返す。
func (s *DriverSet) Values() []*DriverBinding {
	if s == nil {
		return nil
	}
	return s.bindings
}
