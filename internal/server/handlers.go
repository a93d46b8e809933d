package server

import (
	"net/http"
	"time"

	"camscout/internal/camera"

	"github.com/gin-gonic/gin"
)

// HealthResponse はヘルスチェックの応答
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse はシステム状態の応答
type StatusResponse struct {
	Status    string         `json:"status"`
	Devices   int            `json:"devices"`
	NoDevices bool           `json:"no_devices"`
	Pools     map[string]int `json:"pools"`
	Timestamp time.Time      `json:"timestamp"`
}

// CamerasResponse は検出済みカメラ一覧の応答
type CamerasResponse struct {
	Cameras []camera.Device `json:"cameras"`
}

// PoolsResponse はタイプごとの残数の応答
type PoolsResponse struct {
	Types []string       `json:"types"`
	Pools map[string]int `json:"pools"`
}

// ErrorResponse はエラー応答
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// handleHealth はヘルスチェックエンドポイント
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はステータス確認エンドポイント
func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	response := StatusResponse{
		Status:    "running",
		Devices:   len(s.researcher.Devices()),
		NoDevices: s.researcher.NoDevices(),
		Pools:     s.researcher.Remaining(),
		Timestamp: time.Now(),
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, response)
}

// handleCameras は検出時点の全デバイスを返す（払い出し済みを含む）
func (s *Server) handleCameras(c *gin.Context) {
	s.mu.Lock()
	devices := s.researcher.Devices()
	s.mu.Unlock()

	c.JSON(http.StatusOK, CamerasResponse{Cameras: devices})
}

// handlePools はタイプごとの未払い出し数を返す
func (s *Server) handlePools(c *gin.Context) {
	s.mu.Lock()
	response := PoolsResponse{
		Types: s.researcher.Labels(),
		Pools: s.researcher.Remaining(),
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, response)
}

// handleClaim は指定タイプのカメラを1台払い出す
func (s *Server) handleClaim(c *gin.Context) {
	label := c.Param("type")

	s.mu.Lock()
	device, ok := s.researcher.Claim(label)
	s.mu.Unlock()

	s.metrics.IncClaims(label, ok)

	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "exhausted",
			Message:   "指定されたタイプのカメラは残っていません",
			Timestamp: time.Now(),
		})
		return
	}

	s.logger.Info("カメラを払い出しました", "type", label, "name", device.Name, "id", device.ID)
	c.JSON(http.StatusOK, device)
}
