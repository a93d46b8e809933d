package camera

import (
	"context"
	"fmt"
	"os/exec"
)

// DefaultV4L2Command は v4l-utils のコマンド名
const DefaultV4L2Command = "v4l2-ctl"

// V4L2Lister は `v4l2-ctl --list-devices` でデバイス一覧を取得する
type V4L2Lister struct {
	Command string // 実行するコマンド（空なら v4l2-ctl）
}

// NewV4L2Lister は新しいV4L2Listerを作成する
func NewV4L2Lister(command string) *V4L2Lister {
	if command == "" {
		command = DefaultV4L2Command
	}
	return &V4L2Lister{Command: command}
}

// List はデバイス一覧の標準出力を返す
// 非ゼロ終了やコマンドが無い場合はエラー
func (l *V4L2Lister) List(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, l.Command, "--list-devices")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("デバイス一覧の取得に失敗: %w", err)
	}
	return string(output), nil
}

// StaticLister は固定のテキストを返すLister
// 保存済みの出力の再生やテストに使う
type StaticLister struct {
	Output string
	Err    error
	calls  int
}

// NewStaticLister は新しいStaticListerを作成する
func NewStaticLister(output string) *StaticLister {
	return &StaticLister{Output: output}
}

// List は固定のテキストを返す
func (l *StaticLister) List(_ context.Context) (string, error) {
	l.calls++
	if l.Err != nil {
		return "", l.Err
	}
	return l.Output, nil
}

// Calls はListが呼ばれた回数を返す
func (l *StaticLister) Calls() int {
	return l.calls
}
