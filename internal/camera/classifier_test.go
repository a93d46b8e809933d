package camera

import "testing"

func TestClassify(t *testing.T) {
	table := TypeTable{
		{Label: "thermal", Fragments: []string{"thermal", "lepton"}},
		{Label: "cam", Fragments: []string{"webcam", "camera"}},
		{Label: "realsense", Fragments: []string{"RealSense"}},
	}

	testCases := []struct {
		name      string
		device    string
		wantLabel string
		wantOK    bool
	}{
		{"完全一致", "thermal", "thermal", true},
		{"大文字小文字を無視", "PureTHERMAL 2", "thermal", true},
		{"部分一致", "USB Webcam HD", "cam", true},
		{"テーブルの大文字断片", "Intel(R) realsense(TM) Depth 435", "realsense", true},
		{"複数タイプに一致する場合はテーブル順", "Thermal Camera", "thermal", true},
		{"一致なし", "Elgato Cam Link", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			label, ok := Classify(tc.device, table)
			if label != tc.wantLabel || ok != tc.wantOK {
				t.Errorf("Classify(%q) = %q, %v; want %q, %v", tc.device, label, ok, tc.wantLabel, tc.wantOK)
			}
		})
	}
}

func TestClassify_TableOrderIsPriority(t *testing.T) {
	name := "Thermal Webcam"
	first := TypeTable{
		{Label: "thermal", Fragments: []string{"thermal"}},
		{Label: "cam", Fragments: []string{"webcam"}},
	}
	second := TypeTable{
		{Label: "cam", Fragments: []string{"webcam"}},
		{Label: "thermal", Fragments: []string{"thermal"}},
	}

	if label, _ := Classify(name, first); label != "thermal" {
		t.Errorf("Expected thermal, got %q", label)
	}
	if label, _ := Classify(name, second); label != "cam" {
		t.Errorf("Expected cam, got %q", label)
	}
}

func TestClassifyAll(t *testing.T) {
	table := TypeTable{{Label: "thermal", Fragments: []string{"thermal"}}}
	devices := []Device{
		{Name: "ThermalCam One"},
		{Name: "Webcam Two", Type: "stale"},
	}

	ClassifyAll(devices, table)

	if devices[0].Type != "thermal" {
		t.Errorf("Expected thermal, got %q", devices[0].Type)
	}
	if devices[1].Type != "" {
		t.Errorf("Expected empty type, got %q", devices[1].Type)
	}
}
