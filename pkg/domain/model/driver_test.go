// 指示: miu200521358
package model

import (
	"math"
	"testing"
)

func constantSampler(values map[string]float64) ChannelSampler {
	return func(boneName string, channel TransformChannel) (float64, error) {
		return values[boneName+":"+string(channel)], nil
	}
}

func TestDriverBindingEvaluatesClampedFormula(t *testing.T) {
	binding, err := NewDriverBinding(
		"Pupil_R",
		[]DriverInput{{BoneName: "EyeTracker", Channel: TransformChannelLocX, VarName: "bone_x"}},
		"max(min((bone_x * 10), 1), 0)",
	)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}

	cases := []struct {
		value    float64
		expected float64
	}{
		{value: 0.05, expected: 0.5},
		{value: 0.5, expected: 1.0},
		{value: -0.3, expected: 0.0},
	}
	for _, c := range cases {
		result, err := binding.Evaluate(constantSampler(map[string]float64{
			"EyeTracker:LOC_X": c.value,
		}))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if math.Abs(result-c.expected) > 1e-9 {
			t.Fatalf("value %f: result mismatch: %f != %f", c.value, result, c.expected)
		}
	}
}

func TestDriverBindingEvaluatesDualInputMax(t *testing.T) {
	binding, err := NewDriverBinding(
		"E_Smile_L",
		[]DriverInput{
			{BoneName: "e.wink.up.L", Channel: TransformChannelLocY, VarName: "bone_001"},
			{BoneName: "eye.pos", Channel: TransformChannelLocY, VarName: "bone"},
		},
		"max(bone_001 * 5, bone * 5)",
	)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	result, err := binding.Evaluate(constantSampler(map[string]float64{
		"e.wink.up.L:LOC_Y": 0.02,
		"eye.pos:LOC_Y":     0.1,
	}))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if math.Abs(result-0.5) > 1e-9 {
		t.Fatalf("result mismatch: %f", result)
	}
}

func TestDriverBindingRejectsUndeclaredVariable(t *testing.T) {
	_, err := NewDriverBinding(
		"E_Close",
		[]DriverInput{{BoneName: "EyeTracker", Channel: TransformChannelScaleY, VarName: "scaleval"}},
		"(1 - other) * 2",
	)
	if err == nil {
		t.Fatalf("undeclared variable should fail validation")
	}
}

func TestDriverBindingRejectsBrokenFormula(t *testing.T) {
	_, err := NewDriverBinding(
		"E_Close",
		[]DriverInput{{BoneName: "EyeTracker", Channel: TransformChannelScaleY, VarName: "scaleval"}},
		"max(scaleval,",
	)
	if err == nil {
		t.Fatalf("broken formula should fail parsing")
	}
}

func TestDriverSetAddKeepsFirstBinding(t *testing.T) {
	set := NewDriverSet()
	first, err := NewDriverBinding(
		"E_Stare",
		[]DriverInput{{BoneName: "EyeTracker", Channel: TransformChannelScaleY, VarName: "yscale"}},
		"max(min((yscale - 1) * 2, 1), 0)",
	)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	second, err := NewDriverBinding(
		"E_Stare",
		[]DriverInput{{BoneName: "EyeTracker", Channel: TransformChannelScaleY, VarName: "yscale"}},
		"yscale * 2",
	)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}

	if !set.Add(first) {
		t.Fatalf("first add should succeed")
	}
	if set.Add(second) {
		t.Fatalf("second add for same target should be refused")
	}
	if set.Len() != 1 {
		t.Fatalf("len mismatch: %d", set.Len())
	}
	stored, exists := set.Get("E_Stare")
	if !exists || stored.Formula != first.Formula {
		t.Fatalf("stored binding mismatch")
	}
}
