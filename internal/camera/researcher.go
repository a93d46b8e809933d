package camera

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// researcherState は検出結果の終端状態
type researcherState int

const (
	stateReady     researcherState = iota // プールが構築済み
	stateNoDevices                        // デバイスが1台も見つからなかった
)

// Researcher は起動時に一度だけデバイスを検出し、タイプ別にカメラを払い出す
//
// 検出結果は構築時点のスナップショットで、再スキャンはしない。
// 内部でロックを取らないため、複数の呼び出し元で共有する場合は外側で直列化すること。
type Researcher struct {
	table   TypeTable
	lister  Lister
	prober  Prober
	codecs  CodecPreferences
	logger  *slog.Logger
	state   researcherState
	devices []Device
	pool    *Pool
}

// Option はResearcherの設定を変更する
type Option func(*Researcher)

// WithLogger はログ出力先を設定する
func WithLogger(logger *slog.Logger) Option {
	return func(r *Researcher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCodecPreferences は組み込みの優先フォーマットに指定したタイプの値を上書きする
// 指定しなかったタイプは組み込みの値のまま
func WithCodecPreferences(codecs CodecPreferences) Option {
	return func(r *Researcher) {
		merged := DefaultCodecPreferences()
		for label, codec := range r.codecs {
			merged[label] = codec
		}
		for label, codec := range codecs {
			merged[label] = codec
		}
		r.codecs = merged
	}
}

// NewResearcher はデバイスの列挙・分類・フォーマット選択・プール構築を一度だけ実行する
func NewResearcher(ctx context.Context, table TypeTable, lister Lister, prober Prober, opts ...Option) *Researcher {
	r := &Researcher{
		table:  table,
		lister: lister,
		prober: prober,
		codecs: DefaultCodecPreferences(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.discover(ctx)
	return r
}

// discover は検出パイプライン全体を実行する
func (r *Researcher) discover(ctx context.Context) {
	output, err := r.lister.List(ctx)
	if err != nil {
		r.logger.Warn("デバイス一覧を取得できませんでした", "error", err)
	}

	devices := ParseDeviceList(output)
	if len(devices) == 0 {
		r.logger.Info("カメラが検出されませんでした")
		r.state = stateNoDevices
		return
	}

	for i := range devices {
		devices[i].ID = uuid.New().String()
	}

	ClassifyAll(devices, r.table)
	for i := range devices {
		if devices[i].Type == "" {
			r.logger.Warn("タイプを判定できないデバイス", "name", devices[i].Name)
		}
		r.selectFormat(ctx, &devices[i])
	}

	pool, rejected := NewPool(r.table.Labels(), devices)
	for _, d := range rejected {
		r.logger.Warn("未知のタイプのためプールに追加しません", "name", d.Name, "type", d.Type)
	}

	r.devices = devices
	r.pool = pool
	r.state = stateReady

	r.logger.Info("カメラの検出が完了しました", "devices", len(devices), "pools", pool.Counts())
}

// selectFormat は優先フォーマットがあるタイプのみ主パスを調べ、最初の候補を採用する
// 調査の失敗はこのデバイスだけの問題として扱う
func (r *Researcher) selectFormat(ctx context.Context, d *Device) {
	codec, ok := r.codecs[d.Type]
	if !ok || d.Type == "" {
		return
	}

	path, ok := d.PrimaryPath()
	if !ok {
		r.logger.Warn("パスが無いためフォーマットを調べません", "name", d.Name)
		return
	}

	if idx, ok := deviceIndex(path); ok {
		d.Index = &idx
	}

	output, err := r.prober.Probe(ctx, path)
	if err != nil {
		r.logger.Debug("フォーマットの取得に失敗", "device", path, "error", err)
		return
	}

	best, ok := SelectBest(ParseFormats(output, codec))
	if !ok {
		r.logger.Debug("優先フォーマットの候補がありません", "device", path, "codec", codec)
		return
	}
	d.Format = &best
}

// Claim は指定タイプのカメラを1台取り出す
// カメラが無い、またはそのタイプを使い切った場合は ok=false
func (r *Researcher) Claim(label string) (*Device, bool) {
	if r.state == stateNoDevices {
		r.logger.Info("システム内にカメラがありません", "type", label)
		return nil, false
	}

	d, ok := r.pool.Claim(label)
	if !ok {
		r.logger.Info("このタイプのカメラは全て払い出し済みです", "type", label)
		return nil, false
	}
	return d, true
}

// NoDevices は検出時にデバイスが見つからなかったかを返す
func (r *Researcher) NoDevices() bool {
	return r.state == stateNoDevices
}

// Devices は検出した全デバイス（タイプ不明を含む）のコピーを検出順で返す
func (r *Researcher) Devices() []Device {
	devices := make([]Device, len(r.devices))
	copy(devices, r.devices)
	return devices
}

// Remaining はタイプごとの未払い出し数を返す
func (r *Researcher) Remaining() map[string]int {
	if r.pool == nil {
		counts := make(map[string]int, len(r.table))
		for _, label := range r.table.Labels() {
			counts[label] = 0
		}
		return counts
	}
	return r.pool.Counts()
}

// Labels はタイプテーブルのラベルを順に返す
func (r *Researcher) Labels() []string {
	return r.table.Labels()
}
