package camera

import "strings"

// Classify は名前に断片を含む最初のタイプを返す（大文字小文字を区別しない）
// 一致するタイプが無ければ ok=false
func Classify(name string, table TypeTable) (label string, ok bool) {
	lower := strings.ToLower(name)
	for _, entry := range table {
		for _, fragment := range entry.Fragments {
			if strings.Contains(lower, strings.ToLower(fragment)) {
				return entry.Label, true
			}
		}
	}
	return "", false
}

// ClassifyAll は各デバイスの Type を設定する
func ClassifyAll(devices []Device, table TypeTable) {
	for i := range devices {
		// 一致なしの場合 label は空文字列
		label, _ := Classify(devices[i].Name, table)
		devices[i].Type = label
	}
}
