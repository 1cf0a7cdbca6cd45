package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterNoColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Header("Landed Cost")
	w.Success("meets target")
	w.Warning("outside band")

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("no-color output contains escape codes: %q", out)
	}
	for _, want := range []string{"Landed Cost", "meets target", "outside band"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	buf.Reset()
	NewWriter(&buf, false).Success("ok")
	if !strings.Contains(buf.String(), Green) {
		t.Error("colored output should contain color codes")
	}
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	tbl := w.NewTable("Item", "OMR")
	tbl.AlignRight(1, 5)
	tbl.AddRow("FOB", "69.30")
	tbl.AddRow("Customs duty", "3.65")
	tbl.AddRow("short")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, separator and 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[3], " 3.65") {
		t.Errorf("numeric column should be right-aligned: %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "short       ") {
		t.Errorf("text column should be left-aligned: %q", lines[4])
	}
}

func TestBarClampsShare(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Bar("FOB", 1.7, 10, "69.30")
	w.Bar("VAT", -0.2, 10, "0")

	out := buf.String()
	if !strings.Contains(out, strings.Repeat("█", 10)+" 100.0%") {
		t.Errorf("share above 1 should fill the bar: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("░", 10)+"   0.0%") {
		t.Errorf("negative share should leave the bar empty: %q", out)
	}
}
