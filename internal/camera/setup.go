package camera

import (
	"context"
	"fmt"
	"log/slog"

	"camscout/internal/config"
)

// NewResearcherFromConfig は設定からタイプテーブルとv4l2アダプタを組み立てて検出を実行する
// タイプテーブルが読めない場合のみエラーを返す
func NewResearcherFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Researcher, error) {
	return newResearcherFromConfig(ctx, cfg, logger, nil, nil)
}

// NewReplayResearcherFromConfig は保存済み出力を再生して検出する
// probeDir が空の場合はフォーマットを実機に問い合わせる
func NewReplayResearcherFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, listFile, probeDir string) (*Researcher, error) {
	var lister Lister
	if listFile != "" {
		l, err := LoadListerFile(listFile)
		if err != nil {
			return nil, err
		}
		lister = l
	}

	var prober Prober
	if probeDir != "" {
		p, err := LoadProberDir(probeDir)
		if err != nil {
			return nil, err
		}
		prober = p
	}

	return newResearcherFromConfig(ctx, cfg, logger, lister, prober)
}

func newResearcherFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, lister Lister, prober Prober) (*Researcher, error) {
	table, err := LoadTypeTable(cfg.Camera.TypeTablePaths)
	if err != nil {
		return nil, fmt.Errorf("カメラ設定の読み込みに失敗: %w", err)
	}

	if lister == nil {
		lister = NewV4L2Lister(cfg.Camera.ListCommand)
	}
	if prober == nil {
		prober = NewV4L2Prober(cfg.Camera.ProbeCommand, cfg.Camera.ProbeTimeout)
	}

	opts := []Option{WithLogger(logger)}
	if len(cfg.Camera.CodecPreferences) > 0 {
		opts = append(opts, WithCodecPreferences(CodecPreferences(cfg.Camera.CodecPreferences)))
	}

	return NewResearcher(ctx, table, lister, prober, opts...), nil
}
