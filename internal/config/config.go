package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTypeTableFile はタイプテーブルの既定ファイル名
const DefaultTypeTableFile = "base_cam_in_company.json"

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Camera CameraConfig `yaml:"camera"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// CameraConfig はカメラ検出の設定
type CameraConfig struct {
	// タイプテーブルの候補パス。先頭から順に探し、最初に存在したものを使う
	TypeTablePaths []string `yaml:"type_table_paths"`

	ListCommand  string        `yaml:"list_command"`  // デバイス一覧を取得するコマンド
	ProbeCommand string        `yaml:"probe_command"` // フォーマット一覧を取得するコマンド
	ProbeTimeout time.Duration `yaml:"probe_timeout"` // 1デバイスあたりの上限。0なら無制限

	// タイプごとの優先フォーマット。空なら組み込みの値を使う
	CodecPreferences map[string]string `yaml:"codec_preferences"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Load は設定を読み込む
// .env → 既定値 → 設定ファイル(CAMSCOUT_CONFIG) → 環境変数 の順に上書きする
func Load() (*Config, error) {
	// .env が無くても問題ない
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Camera: CameraConfig{
			TypeTablePaths: DefaultTypeTablePaths(DefaultTypeTableFile),
			ListCommand:    "v4l2-ctl",
			ProbeCommand:   "v4l2-ctl",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}

	if path := os.Getenv("CAMSCOUT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// loadFile はYAMLファイルの内容で既定値を上書きする
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)

	if value := os.Getenv("CAMSCOUT_TYPE_TABLE"); value != "" {
		c.Camera.TypeTablePaths = filepath.SplitList(value)
	}
	c.Camera.ListCommand = getEnvOrDefault("CAMSCOUT_LIST_COMMAND", c.Camera.ListCommand)
	c.Camera.ProbeCommand = getEnvOrDefault("CAMSCOUT_PROBE_COMMAND", c.Camera.ProbeCommand)
	c.Camera.ProbeTimeout = getEnvAsDurationOrDefault("CAMSCOUT_PROBE_TIMEOUT", c.Camera.ProbeTimeout)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if len(c.Camera.TypeTablePaths) == 0 {
		return fmt.Errorf("タイプテーブルの候補パスがありません")
	}
	if c.Camera.ListCommand == "" || c.Camera.ProbeCommand == "" {
		return fmt.Errorf("v4l2コマンドが設定されていません")
	}
	if c.Camera.ProbeTimeout < 0 {
		return fmt.Errorf("無効なプローブタイムアウト: %s", c.Camera.ProbeTimeout)
	}
	for label, codec := range c.Camera.CodecPreferences {
		if strings.TrimSpace(label) == "" || strings.TrimSpace(codec) == "" {
			return fmt.Errorf("無効な優先フォーマット: %q=%q", label, codec)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DefaultTypeTablePaths はタイプテーブルの既定の候補パスを優先順に返す
// カレントディレクトリ → reference/ → 実行ファイルの隣 → /etc/camscout
func DefaultTypeTablePaths(name string) []string {
	paths := []string{
		name,
		filepath.Join("reference", name),
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, name),
			filepath.Join(dir, "reference", name),
		)
	}

	return append(paths, filepath.Join("/etc/camscout", name))
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は環境変数を time.Duration として取得する
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
