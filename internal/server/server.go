package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"camscout/internal/camera"
	"camscout/internal/config"
	"camscout/internal/logger"
	"camscout/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Researcher はサーバーが利用するカメラ検出結果のインターフェース
type Researcher interface {
	Claim(label string) (*camera.Device, bool)
	Devices() []camera.Device
	Remaining() map[string]int
	NoDevices() bool
	Labels() []string
}

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	router     *gin.Engine
	logger     *slog.Logger
	metrics    *metrics.Metrics

	// Researcher はロックを持たないため払い出しはここで直列化する
	mu         sync.Mutex
	researcher Researcher
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, researcher Researcher, log *slog.Logger, met *metrics.Metrics) *Server {
	if log == nil {
		log = slog.Default()
	}
	if met == nil {
		met = metrics.New()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(log))

	s := &Server{
		config:     cfg,
		router:     router,
		logger:     log,
		metrics:    met,
		researcher: researcher,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	met.SetDevicesDiscovered(len(researcher.Devices()))
	s.setupRoutes()
	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// ヘルスチェックエンドポイント
	s.router.GET("/health", s.handleHealth)

	// APIエンドポイント
	api := s.router.Group("/api")
	api.GET("/status", s.handleStatus)
	api.GET("/cameras", s.handleCameras)
	api.GET("/pools", s.handlePools)
	api.POST("/cameras/:type/claim", s.handleClaim)

	// メトリクス
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler(s.refreshGauges)))
}

// Handler はルーティング済みのハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start はサーバーを起動し、コンテキストのキャンセルかシグナルで停止する
func (s *Server) Start(ctx context.Context) error {
	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Info("HTTPサーバーを起動しています", "addr", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.Info("シグナルを受信しました", "signal", sig.String())
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}

// refreshGauges はスクレイプ前にプール残数を反映する
func (s *Server) refreshGauges() {
	s.mu.Lock()
	counts := s.researcher.Remaining()
	s.mu.Unlock()

	s.metrics.SetPoolRemaining(counts)
}
