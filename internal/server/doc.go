// Package server は、カメラ払い出しのHTTPサーバーを管理します。
//
// 起動時に一度だけ検出したカメラ構成を参照し、タイプ単位の払い出しを
// HTTP経由で提供します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 検出済みカメラ一覧と残数の配信
//   - 払い出し要求の直列化
//   - Prometheusメトリクスの配信
//
// 仕様:
//   - ルーターはgin-gonic/ginを使用
//   - 払い出しはミューテックスで直列化（Researcher自体はロックを持たない）
//   - グレースフルシャットダウンに対応
package server
