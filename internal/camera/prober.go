package camera

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// V4L2Prober は `v4l2-ctl -d <path> --list-formats-ext` でフォーマット一覧を取得する
type V4L2Prober struct {
	Command string        // 実行するコマンド（空なら v4l2-ctl）
	Timeout time.Duration // 1デバイスあたりの上限。0なら無制限
}

// NewV4L2Prober は新しいV4L2Proberを作成する
func NewV4L2Prober(command string, timeout time.Duration) *V4L2Prober {
	if command == "" {
		command = DefaultV4L2Command
	}
	return &V4L2Prober{Command: command, Timeout: timeout}
}

// Probe は指定デバイスのフォーマット一覧を返す
func (p *V4L2Prober) Probe(ctx context.Context, path string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Command, "-d", path, "--list-formats-ext")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("フォーマット一覧の取得に失敗 (%s): %w", path, err)
	}
	return string(output), nil
}

// StaticProber はパスごとに固定のテキストを返すProber
type StaticProber struct {
	Outputs map[string]string
	calls   []string
}

// NewStaticProber は新しいStaticProberを作成する
func NewStaticProber(outputs map[string]string) *StaticProber {
	if outputs == nil {
		outputs = make(map[string]string)
	}
	return &StaticProber{Outputs: outputs}
}

// Probe は登録済みのテキストを返す。未登録のパスはエラー
func (p *StaticProber) Probe(_ context.Context, path string) (string, error) {
	p.calls = append(p.calls, path)
	output, ok := p.Outputs[path]
	if !ok {
		return "", fmt.Errorf("デバイスが見つかりません: %s", path)
	}
	return output, nil
}

// Calls はProbeに渡されたパスを呼び出し順に返す
func (p *StaticProber) Calls() []string {
	return append([]string(nil), p.calls...)
}
