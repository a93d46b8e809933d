package camera

import (
	"regexp"
	"strconv"
	"strings"
)

// `v4l2-ctl --list-formats-ext` の出力例:
//
//	[0]: 'MJPG' (Motion-JPEG, compressed)
//		Size: Discrete 1920x1080
//			Interval: Discrete 0.033s (30.000 fps)
var (
	formatLineRe = regexp.MustCompile(`^\s*\[\d+\]:\s+'(\w+)'`)
	sizeLineRe   = regexp.MustCompile(`^\s*Size:\s+Discrete\s+(\d+)x(\d+)`)
	fpsRe        = regexp.MustCompile(`\((\d+\.\d+)\s+fps\)`)
)

// ParseFormats はフォーマット一覧から preferred タグの候補だけを出現順に返す
// 数値が解析できない行があった場合は一覧全体を信用せず空を返す
func ParseFormats(output, preferred string) []Format {
	candidates := []Format{}

	var (
		currentTag string
		width      int
		height     int
		hasSize    bool
	)

	for _, line := range strings.Split(output, "\n") {
		if m := formatLineRe.FindStringSubmatch(line); m != nil {
			currentTag = m[1]
			hasSize = false
			continue
		}

		// 他のフォーマット配下の行は読み飛ばす
		if currentTag != preferred {
			continue
		}

		if m := sizeLineRe.FindStringSubmatch(line); m != nil {
			w, errW := strconv.Atoi(m[1])
			h, errH := strconv.Atoi(m[2])
			if errW != nil || errH != nil {
				return []Format{}
			}
			width, height, hasSize = w, h, true
			continue
		}

		if !hasSize {
			continue
		}

		if m := fpsRe.FindStringSubmatch(line); m != nil {
			fps, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return []Format{}
			}
			candidates = append(candidates, Format{
				Tag:    currentTag,
				Width:  width,
				Height: height,
				FPS:    fps,
			})
		}
	}

	return candidates
}

// SelectBest は最初の候補を最良とみなす
// 解像度やフレームレートでの並べ替えはせず、ユーティリティの出力順に従う
func SelectBest(candidates []Format) (Format, bool) {
	if len(candidates) == 0 {
		return Format{}, false
	}
	return candidates[0], true
}

// deviceIndex はパス末尾の1文字を数字として読む
// /dev/video12 は 2 になる
func deviceIndex(path string) (int, bool) {
	if path == "" {
		return 0, false
	}
	c := path[len(path)-1]
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}
