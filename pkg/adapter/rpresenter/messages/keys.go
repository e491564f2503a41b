// 指示: miu200521358
// Package messages はUI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	HelpUsageTitle = "使い方"
	HelpUsage      = "使い方説明"

	LabelFile         = "ファイル"
	LabelScenePath    = "シーン入力"
	LabelScenePathTip = "シーン入力説明"
	LabelReportPath   = "レポート出力"
	LabelSetup        = "セットアップ開始"
	LabelSetupTip     = "セットアップ開始説明"

	MessageLoadFailed    = "読み込み失敗"
	MessageSetupFailed   = "セットアップ失敗"
	MessageInputRequired = "シーンファイルを指定してください"
	MessageSceneMissing  = "シーンデータが見つかりません"

	LogLoadSuccess  = "シーン読み込み成功: %s"
	LogSetupSuccess = "リグセットアップ完了: %s"

	LogStageAlignment    = "指先整列完了: 反復回数=%d"
	LogStagePrepared     = "骨格整備完了: %d件"
	LogStageRenamed      = "ボーン名正規化完了: %d件"
	LogStageGenerated    = "ホストリグ生成完了: ボーン数=%d"
	LogStageSynthesized  = "リグ合成完了: 派生=%d"
	LogStageWeights      = "ウェイト移送完了: %d組"
	LogStageEyeSplit     = "目モーフ分割完了: %d件"
	LogStageDriversBound = "ドライバー束縛完了: %d件"

	LogWarningSummary = "警告あり: %s (%s)"
)
