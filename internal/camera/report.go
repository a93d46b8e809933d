package camera

import (
	"fmt"
	"io"
)

// reportWriter は最初の書き込みエラーを保持し、以降の書き込みを行わない
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...interface{}) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

// WriteReport は検出したデバイスの詳細を人が読める形で書き出す
func WriteReport(w io.Writer, devices []Device) error {
	rw := &reportWriter{w: w}
	if len(devices) == 0 {
		rw.printf("カメラデバイスが見つかりません\n")
		return rw.err
	}

	rw.printf("Cam info:\n")
	for _, d := range devices {
		typ := d.Type
		if typ == "" {
			typ = "(unknown)"
		}
		rw.printf("• %s\n", d.Name)
		rw.printf("• Cam type: %s\n", typ)
		for _, path := range d.Paths {
			rw.printf("  └ %s\n", path)
		}
		if d.Index != nil {
			rw.printf("• Cam id: %d\n", *d.Index)
		}
		if d.Format != nil {
			rw.printf("• Codec format: %s\n", d.Format.Tag)
			rw.printf("• Pixels size: %dx%d by %.3f FPS\n", d.Format.Width, d.Format.Height, d.Format.FPS)
		}
		rw.printf("\n")
	}
	return rw.err
}

// WriteSummary はタイプごとの台数をテーブル順に書き出す
func WriteSummary(w io.Writer, labels []string, counts map[string]int) error {
	rw := &reportWriter{w: w}
	rw.printf("All find:\n")
	for _, label := range labels {
		rw.printf("%d %s obj\n", counts[label], label)
	}
	rw.printf("\n")
	return rw.err
}
