// Package main はカメラを一度だけ検出し、指定タイプのカメラを払い出すコマンド
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"camscout/internal/camera"
	"camscout/internal/config"
	"camscout/internal/logger"
)

func main() {
	// コマンドラインオプション
	var (
		verbose  = flag.Bool("v", false, "検出したカメラの詳細を表示")
		claims   = flag.String("claim", "cam,thermal", "払い出すタイプ（カンマ区切り、順に払い出す）")
		listFile = flag.String("list-file", "", "保存済みの v4l2-ctl --list-devices 出力を使う")
		probeDir = flag.String("probe-dir", "", "保存済みの --list-formats-ext 出力のディレクトリ (videoN.txt)")
	)
	flag.Parse()

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// 表示は標準出力、ログは標準エラーに分ける
	lg := logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	// コンテキストを作成
	ctx := context.Background()

	researcher, err := camera.NewReplayResearcherFromConfig(ctx, cfg, lg, *listFile, *probeDir)
	if err != nil {
		log.Fatalf("カメラの検出に失敗しました: %v", err)
	}

	if *verbose && !researcher.NoDevices() {
		if err := camera.WriteReport(os.Stdout, researcher.Devices()); err != nil {
			log.Printf("カメラ情報の表示に失敗しました: %v", err)
		}
		if err := camera.WriteSummary(os.Stdout, researcher.Labels(), researcher.Remaining()); err != nil {
			log.Printf("集計の表示に失敗しました: %v", err)
		}
	}

	for _, label := range strings.Split(*claims, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		cam, ok := researcher.Claim(label)
		if !ok {
			fmt.Printf("%s: 利用できるカメラがありません\n", label)
			continue
		}

		fmt.Printf("Using camera: %s\n", cam.Name)
		if cam.Format != nil {
			fmt.Printf("Resolution: %dx%d\n", cam.Format.Width, cam.Format.Height)
		}
	}
}
