// 指示: miu200521358
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_wuwa_rig/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_wuwa_rig/pkg/adapter/riggen"
	"github.com/miu200521358/mu_wuwa_rig/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_wuwa_rig/pkg/usecase/rinteractor"
)

// options はCLI引数を保持する。
type options struct {
	inputPath  string
	reportPath string
}

// main はシーン読み込みとリグ再構成を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	reader := io_scene.NewGltfSceneRepository()
	if !reader.CanLoad(opts.inputPath) {
		return fmt.Errorf("入力形式が未対応です: %s", opts.inputPath)
	}

	fmt.Fprintf(out, "[mu_wuwa_rig] 読み込み開始: %s\n", opts.inputPath)
	asset, err := reader.Load(opts.inputPath)
	if err != nil {
		return fmt.Errorf("シーン読み込みに失敗しました: %w", err)
	}
	fmt.Fprintf(out, "[mu_wuwa_rig] "+messages.LogLoadSuccess+"\n", asset.Name)

	usecase := rinteractor.NewRigSetupUsecase(riggen.NewRigGenerator())
	result, err := usecase.Setup(rinteractor.SetupRequest{
		Asset:            asset,
		ProgressReporter: &stageProgressPrinter{out: out},
	})
	if err != nil {
		return fmt.Errorf("リグ構成に失敗しました: %w", err)
	}

	for _, skipped := range result.Report.Skipped() {
		fmt.Fprintf(out, "[mu_wuwa_rig] "+messages.LogWarningSummary+"\n", skipped.Name, skipped.Reason)
	}
	if opts.reportPath != "" {
		if err := writeReport(opts.reportPath, result.Report); err != nil {
			return err
		}
		fmt.Fprintf(out, "[mu_wuwa_rig] レポート出力: %s\n", opts.reportPath)
	}
	fmt.Fprintf(out, "[mu_wuwa_rig] "+messages.LogSetupSuccess+"\n", asset.Name)
	return nil
}

// stageProgressPrinter は進捗イベントを標準出力へ写すレポーターを表す。
type stageProgressPrinter struct {
	out io.Writer
}

// ReportSetupProgress は段完了ごとの件数を出力する。
func (p *stageProgressPrinter) ReportSetupProgress(event rinteractor.SetupProgressEvent) {
	var format string
	switch event.Type {
	case rinteractor.SetupProgressEventTypeAlignmentCompleted:
		format = messages.LogStageAlignment
	case rinteractor.SetupProgressEventTypeSkeletonPrepared:
		format = messages.LogStagePrepared
	case rinteractor.SetupProgressEventTypeRenameCompleted:
		format = messages.LogStageRenamed
	case rinteractor.SetupProgressEventTypeRigGenerated:
		format = messages.LogStageGenerated
	case rinteractor.SetupProgressEventTypeRigSynthesized:
		format = messages.LogStageSynthesized
	case rinteractor.SetupProgressEventTypeWeightsTransferred:
		format = messages.LogStageWeights
	case rinteractor.SetupProgressEventTypeEyeMorphsSplit:
		format = messages.LogStageEyeSplit
	case rinteractor.SetupProgressEventTypeDriversBound:
		format = messages.LogStageDriversBound
	default:
		format = string(event.Type) + ": %d件"
	}
	fmt.Fprintf(p.out, "[mu_wuwa_rig] "+format+"\n", event.ItemCount)
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_wuwa_rig", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", "入力シーンファイルパス (.glb/.gltf)")
	report := fs.String("report", "", "セットアップレポート出力パス (.json)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return options{}, fmt.Errorf("入力シーンファイルを指定してください (-in)")
	}

	ext := filepath.Ext(*in)
	if !strings.EqualFold(ext, ".glb") && !strings.EqualFold(ext, ".gltf") {
		return options{}, fmt.Errorf("入力拡張子が .glb/.gltf ではありません: %s", *in)
	}
	if *report != "" && !strings.EqualFold(filepath.Ext(*report), ".json") {
		return options{}, fmt.Errorf("レポート拡張子が .json ではありません: %s", *report)
	}

	return options{inputPath: *in, reportPath: *report}, nil
}

// writeReport はセットアップレポートをJSONで書き出す。
func writeReport(reportPath string, report *rinteractor.SetupReport) error {
	if err := ensureOutputDir(reportPath); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("レポートの変換に失敗しました: %w", err)
	}
	if err := os.WriteFile(reportPath, encoded, 0o644); err != nil {
		return fmt.Errorf("レポートの書き出しに失敗しました: %w", err)
	}
	return nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
