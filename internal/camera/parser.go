package camera

import (
	"strings"
)

const (
	// devicePathPrefix はデバイス一覧でパスとして扱う行の接頭辞
	devicePathPrefix = "/dev/video"
	// pathMarker を含む行はヘッダとして扱わない
	pathMarker = ":/dev/"
)

// ParseDeviceList は `v4l2-ctl --list-devices` の出力をデバイス一覧に変換する
//
// インデントされていない行がデバイスブロックの開始、その下の /dev/video* 行がパスになる。
// 最初のヘッダより前のパス行は所属先が無いので捨てる。パスが0個のブロックもそのまま返す。
func ParseDeviceList(output string) []Device {
	devices := []Device{}
	var current *Device

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && !strings.Contains(line, pathMarker) {
			if current != nil {
				devices = append(devices, *current)
			}
			current = &Device{
				Name:  strings.TrimSpace(strings.TrimSuffix(line, ":")),
				Paths: []string{},
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if current != nil && strings.HasPrefix(trimmed, devicePathPrefix) {
			current.Paths = append(current.Paths, trimmed)
		}
	}

	if current != nil {
		devices = append(devices, *current)
	}

	return devices
}
