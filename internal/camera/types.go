package camera

import (
	"context"
	"fmt"
)

// Device は列挙ユーティリティが報告した1台のキャプチャデバイスを表す
type Device struct {
	ID     string   `json:"id"`     // 検出時に割り当てる一意識別子
	Name   string   `json:"name"`   // デバイスの表示名
	Paths  []string `json:"paths"`  // アクセスパス（例: /dev/video0）
	Type   string   `json:"type"`   // 分類されたタイプ。一致なしなら空
	Format *Format  `json:"format"` // 選択されたキャプチャフォーマット
	Index  *int     `json:"index"`  // 主パス末尾の数字から得たデバイス番号
}

// PrimaryPath は最初のアクセスパスを返す
func (d *Device) PrimaryPath() (string, bool) {
	if len(d.Paths) == 0 {
		return "", false
	}
	return d.Paths[0], true
}

// Format はフォーマット一覧の1行（フォーマット・解像度・フレームレート）
type Format struct {
	Tag    string  `json:"tag"`    // フォーマットタグ（例: MJPG）
	Width  int     `json:"width"`  // 幅
	Height int     `json:"height"` // 高さ
	FPS    float64 `json:"fps"`    // フレームレート
}

// String は "MJPG 1920x1080@30.000" 形式で返す
func (f Format) String() string {
	return fmt.Sprintf("%s %dx%d@%.3f", f.Tag, f.Width, f.Height, f.FPS)
}

// CodecPreferences はタイプごとの優先フォーマットタグ
type CodecPreferences map[string]string

// DefaultCodecPreferences は組み込みの優先フォーマット
// realsense などここに無いタイプはフォーマットを調べない
func DefaultCodecPreferences() CodecPreferences {
	return CodecPreferences{
		"cam":     "MJPG",
		"thermal": "YUYV",
	}
}

// Lister はデバイス一覧の生テキストを取得する
type Lister interface {
	// List は列挙ユーティリティの標準出力を返す
	List(ctx context.Context) (string, error)
}

// Prober は1デバイス分のフォーマット一覧の生テキストを取得する
type Prober interface {
	// Probe は指定パスのフォーマット一覧を返す
	Probe(ctx context.Context, path string) (string, error)
}
