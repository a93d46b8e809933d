package camera

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadListerFile は保存済みの `--list-devices` 出力を読み込む
func LoadListerFile(path string) (*StaticLister, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("デバイス一覧ファイルの読み込みに失敗: %w", err)
	}
	return NewStaticLister(string(data)), nil
}

// LoadProberDir は保存済みの `--list-formats-ext` 出力をディレクトリから読み込む
// video0.txt は /dev/video0 の出力として扱う
func LoadProberDir(dir string) (*StaticProber, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("フォーマット一覧ディレクトリの読み込みに失敗: %w", err)
	}

	outputs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("フォーマット一覧ファイルの読み込みに失敗: %w", err)
		}
		device := "/dev/" + strings.TrimSuffix(entry.Name(), ".txt")
		outputs[device] = string(data)
	}

	return NewStaticProber(outputs), nil
}
