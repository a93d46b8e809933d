// Package camera 接続されたカメラデバイスの検出と払い出しを担う
//
// # 責務
// - V4L2デバイス一覧の取得と解析
// - デバイス名からのカメラタイプ判定（タイプテーブル）
// - タイプごとの優先フォーマットでの最良キャプチャ設定の選択
// - タイプ別プールからのカメラの払い出し
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - 起動時に一度だけカメラ構成を調べたい
// - 「thermal を1台」「cam を1台」のようにタイプ単位でカメラを確保したい
//
// # 仕様
// - Researcher: 構築時に 列挙 → 分類 → フォーマット選択 → プール構築 を一度だけ実行
// - Pool: タイプごとのスタック。後に検出したデバイスから払い出す
// - フォーマット選択: 優先タグの最初の候補を採用（並べ替えはしない）
// - 外部コマンドの失敗は「見つからない」として扱い、エラーにしない
// - タイプテーブルが読めない場合のみ設定エラーとして返す
// - 並行アクセス用のロックは持たない
//
// # 前提要件
//   - v4l-utils: デバイス一覧とフォーマット一覧の取得に使用
//     Ubuntu/Debian: sudo apt install v4l-utils
//     Red Hat/Fedora: sudo dnf install v4l-utils
//   - videoグループへの参加: デバイスアクセス権限
//     sudo usermod -a -G video $USER
package camera
