package camera

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeEntry はタイプラベルとその名前断片
type TypeEntry struct {
	Label     string
	Fragments []string
}

// TypeTable はタイプラベルから名前断片への順序付きマッピング
// 並び順がそのまま分類の優先順位になる
type TypeTable []TypeEntry

// Labels はテーブル順のラベル一覧を返す
func (t TypeTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for _, e := range t {
		labels = append(labels, e.Label)
	}
	return labels
}

// Has はラベルが登録されているか返す
func (t TypeTable) Has(label string) bool {
	for _, e := range t {
		if e.Label == label {
			return true
		}
	}
	return false
}

// ErrTypeTableNotFound は候補パスのどれにもファイルが無い場合のエラー
var ErrTypeTableNotFound = errors.New("タイプテーブルが見つかりません")

// LoadTypeTable は候補パスを順に調べ、最初に存在したファイルを読み込む
func LoadTypeTable(paths []string) (TypeTable, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("タイプテーブルの読み込みに失敗 (%s): %w", path, err)
		}

		table, err := ParseTypeTable(data)
		if err != nil {
			return nil, fmt.Errorf("タイプテーブルの解析に失敗 (%s): %w", path, err)
		}
		return table, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrTypeTableNotFound, strings.Join(paths, ", "))
}

// ParseTypeTable はJSONまたはYAMLのマッピングをTypeTableに変換する
// map へのデコードでは順序が失われるため yaml.Node を直接たどる
func ParseTypeTable(data []byte) (TypeTable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("空のドキュメントです")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("トップレベルはマッピングである必要があります (line %d)", root.Line)
	}

	table := make(TypeTable, 0, len(root.Content)/2)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		label := strings.TrimSpace(key.Value)
		if label == "" {
			return nil, fmt.Errorf("空のラベルがあります (line %d)", key.Line)
		}
		if seen[label] {
			return nil, fmt.Errorf("ラベル %q が重複しています (line %d)", label, key.Line)
		}
		seen[label] = true

		var fragments []string
		if err := value.Decode(&fragments); err != nil {
			return nil, fmt.Errorf("ラベル %q の値は文字列のリストである必要があります: %w", label, err)
		}
		for _, fragment := range fragments {
			if strings.TrimSpace(fragment) == "" {
				return nil, fmt.Errorf("ラベル %q に空の名前断片があります (line %d)", label, value.Line)
			}
		}

		table = append(table, TypeEntry{Label: label, Fragments: fragments})
	}

	return table, nil
}
