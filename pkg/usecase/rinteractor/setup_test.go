// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"testing"

	"github.com/miu200521358/mu_wuwa_rig/pkg/domain/model"
)

// recordingGenerator は呼び出しを記録する生成器を表す。
type recordingGenerator struct {
	called bool
	fail   bool
}

func (g *recordingGenerator) Generate(asset *model.CharacterAsset) error {
	g.called = true
	if g.fail {
		return fmt.Errorf("生成失敗")
	}
	return nil
}

// recordingReporter は進捗イベント列を記録するレポーターを表す。
type recordingReporter struct {
	events []SetupProgressEvent
}

func (r *recordingReporter) ReportSetupProgress(event SetupProgressEvent) {
	r.events = append(r.events, event)
}

func TestSetupRunsAllStagesInOrder(t *testing.T) {
	asset := newTestAsset(t, "Bip001Pelvis", "Bip001Spine", "Bip001Neck", "Bip001Head")
	generator := &recordingGenerator{}
	reporter := &recordingReporter{}

	usecase := NewRigSetupUsecase(generator)
	result, err := usecase.Setup(SetupRequest{Asset: asset, ProgressReporter: reporter})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if !generator.called {
		t.Fatalf("generator should be invoked")
	}
	if result.Asset != asset {
		t.Fatalf("result should carry the asset")
	}
	if result.Report == nil {
		t.Fatalf("result should carry the report")
	}

	expectedOrder := []SetupProgressEventType{
		SetupProgressEventTypeAlignmentCompleted,
		SetupProgressEventTypeSkeletonPrepared,
		SetupProgressEventTypeRenameCompleted,
		SetupProgressEventTypeRigGenerated,
		SetupProgressEventTypeRigSynthesized,
		SetupProgressEventTypeWeightsTransferred,
		SetupProgressEventTypeEyeMorphsSplit,
		SetupProgressEventTypeDriversBound,
	}
	if len(reporter.events) != len(expectedOrder) {
		t.Fatalf("event count mismatch: %d", len(reporter.events))
	}
	for i, event := range reporter.events {
		if event.Type != expectedOrder[i] {
			t.Fatalf("event order mismatch at %d: %s", i, event.Type)
		}
	}
}

func TestSetupGeneratorFailureIsFatal(t *testing.T) {
	asset := newTestAsset(t, "Bip001Pelvis")
	usecase := NewRigSetupUsecase(&recordingGenerator{fail: true})

	if _, err := usecase.Setup(SetupRequest{Asset: asset}); err == nil {
		t.Fatalf("generator failure should abort setup")
	}
}

func TestSetupRequiresAssetAndGenerator(t *testing.T) {
	usecase := NewRigSetupUsecase(&recordingGenerator{})
	if _, err := usecase.Setup(SetupRequest{}); err == nil {
		t.Fatalf("missing asset should fail")
	}

	bare := NewRigSetupUsecase(nil)
	asset := newTestAsset(t, "Bip001Pelvis")
	if _, err := bare.Setup(SetupRequest{Asset: asset}); err == nil {
		t.Fatalf("missing generator should fail")
	}
}

func TestSetupRequestGeneratorOverridesDefault(t *testing.T) {
	asset := newTestAsset(t, "Bip001Pelvis")
	fallback := &recordingGenerator{}
	override := &recordingGenerator{}

	usecase := NewRigSetupUsecase(fallback)
	if _, err := usecase.Setup(SetupRequest{Asset: asset, Generator: override}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if fallback.called {
		t.Fatalf("fallback generator should stay idle")
	}
	if !override.called {
		t.Fatalf("override generator should be invoked")
	}
}

func TestSetupWithoutReporterDoesNotPanic(t *testing.T) {
	asset := newTestAsset(t, "Bip001Pelvis")
	usecase := NewRigSetupUsecase(&recordingGenerator{})
	if _, err := usecase.Setup(SetupRequest{Asset: asset}); err != nil {
		t.Fatalf("setup without reporter failed: %v", err)
	}
}
