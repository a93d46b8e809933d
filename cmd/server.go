// Package main はcamscoutサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"camscout/internal/camera"
	"camscout/internal/config"
	"camscout/internal/logger"
	"camscout/internal/metrics"
	"camscout/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// コマンドラインオプション
	var (
		host     = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port     = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		listFile = flag.String("list-file", "", "保存済みの v4l2-ctl --list-devices 出力を使う")
		probeDir = flag.String("probe-dir", "", "保存済みの --list-formats-ext 出力のディレクトリ (videoN.txt)")
		help     = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("camscout")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lg := logger.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	// コンテキストを作成
	ctx := context.Background()

	// 起動時に一度だけカメラを検出する
	researcher, err := camera.NewReplayResearcherFromConfig(ctx, cfg, lg, *listFile, *probeDir)
	if err != nil {
		log.Fatalf("カメラの検出に失敗しました: %v", err)
	}

	srv := server.New(cfg, researcher, lg, metrics.New())

	// サーバーを起動
	lg.Info("camscout サーバーを起動します", "addr", cfg.ServerAddress())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
