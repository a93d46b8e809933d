package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"camscout/internal/camera"
	"camscout/internal/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestConfig はテスト用の設定を作成する
func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0, // ランダムポートを使用
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// newTestServer はスタブ出力から検出したカメラでサーバーを作成する
func newTestServer(t *testing.T, listing string) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := camera.TypeTable{
		{Label: "thermal", Fragments: []string{"thermal"}},
		{Label: "cam", Fragments: []string{"webcam"}},
	}
	prober := camera.NewStaticProber(map[string]string{
		"/dev/video2": "[0]: 'MJPG' (Motion-JPEG)\n\tSize: Discrete 1280x720\n\t\tInterval: Discrete 0.033s (30.000 fps)\n",
	})
	researcher := camera.NewResearcher(context.Background(), table, camera.NewStaticLister(listing), prober, camera.WithLogger(log))

	return New(newTestConfig(), researcher, log, nil)
}

const testListing = "ThermalCam One:\n\t/dev/video0\n\t/dev/video1\nWebcam Two:\n\t/dev/video2\n"

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

// TestServerEndpoints は各エンドポイントのステータスをテストする
func TestServerEndpoints(t *testing.T) {
	s := newTestServer(t, testListing)

	testCases := []struct {
		name           string
		method         string
		endpoint       string
		expectedStatus int
	}{
		{"ヘルスチェックエンドポイント", http.MethodGet, "/health", http.StatusOK},
		{"ステータスエンドポイント", http.MethodGet, "/api/status", http.StatusOK},
		{"カメラ一覧エンドポイント", http.MethodGet, "/api/cameras", http.StatusOK},
		{"プールエンドポイント", http.MethodGet, "/api/pools", http.StatusOK},
		{"メトリクスエンドポイント", http.MethodGet, "/metrics", http.StatusOK},
		{"存在しないパス", http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, tc.method, tc.endpoint)
			if rec.Code != tc.expectedStatus {
				t.Errorf("予期しないステータスコード: got %d, want %d", rec.Code, tc.expectedStatus)
			}
		})
	}
}

// TestClaimEndpoint は払い出しと枯渇をテストする
func TestClaimEndpoint(t *testing.T) {
	s := newTestServer(t, testListing)

	rec := doRequest(s, http.MethodPost, "/api/cameras/cam/claim")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var device camera.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &device); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if device.Name != "Webcam Two" {
		t.Errorf("Expected Webcam Two, got %s", device.Name)
	}
	if device.Format == nil || device.Format.Width != 1280 || device.Format.Tag != "MJPG" {
		t.Errorf("Unexpected format: %+v", device.Format)
	}
	if device.Index == nil || *device.Index != 2 {
		t.Errorf("Unexpected index: %v", device.Index)
	}

	rec = doRequest(s, http.MethodPost, "/api/cameras/cam/claim")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after exhaustion, got %d", rec.Code)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if errResp.Error != "exhausted" {
		t.Errorf("Expected exhausted, got %s", errResp.Error)
	}

	rec = doRequest(s, http.MethodPost, "/api/cameras/unknown/claim")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown type, got %d", rec.Code)
	}

	// 払い出し後もカメラ一覧は検出時点のまま
	rec = doRequest(s, http.MethodGet, "/api/cameras")
	var cameras CamerasResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cameras); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(cameras.Cameras) != 2 {
		t.Errorf("Expected 2 cameras in snapshot, got %d", len(cameras.Cameras))
	}

	rec = doRequest(s, http.MethodGet, "/api/pools")
	var pools PoolsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pools); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if pools.Pools["cam"] != 0 || pools.Pools["thermal"] != 1 {
		t.Errorf("Unexpected pools: %v", pools.Pools)
	}
	if strings.Join(pools.Types, ",") != "thermal,cam" {
		t.Errorf("Unexpected types order: %v", pools.Types)
	}

	rec = doRequest(s, http.MethodGet, "/metrics")
	if !strings.Contains(rec.Body.String(), `camscout_claims_total{outcome="exhausted",type="cam"} 1`) {
		t.Errorf("claims metric not recorded:\n%s", rec.Body.String())
	}
}

// TestStatusNoDevices はカメラが無い場合の状態をテストする
func TestStatusNoDevices(t *testing.T) {
	s := newTestServer(t, "")

	rec := doRequest(s, http.MethodGet, "/api/status")
	var status StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !status.NoDevices || status.Devices != 0 {
		t.Errorf("Unexpected status: %+v", status)
	}

	rec = doRequest(s, http.MethodPost, "/api/cameras/thermal/claim")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	s := newTestServer(t, testListing)

	// テスト用のコンテキスト（タイムアウト付き）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)

	// コンテキストをキャンセルしてサーバーを停止
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの起動/停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}
