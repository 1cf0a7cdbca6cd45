package determinism

import (
	"strings"
	"testing"
)

func TestComputeHash(t *testing.T) {
	a := ComputeHash([]byte(`{"fob":180}`))
	b := ComputeHash([]byte(`{"fob":180}`))
	c := ComputeHash([]byte(`{"fob":175}`))

	if a != b {
		t.Error("same content should hash the same")
	}
	if a == c {
		t.Error("different content should hash differently")
	}
	if len(a.Hex()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a.Hex()))
	}
	if !strings.HasSuffix(a.String(), "...") || !strings.HasPrefix(a.Hex(), strings.TrimSuffix(a.String(), "...")) {
		t.Errorf("unexpected short form %q", a.String())
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]float64{"vat_rate": 0.05, "customs_duty_rate": 0.05, "insurance_rate": 0.01}
	got := strings.Join(SortedKeys(m), ",")
	if got != "customs_duty_rate,insurance_rate,vat_rate" {
		t.Errorf("unexpected order %s", got)
	}

	if len(SortedKeys(map[int]bool{})) != 0 {
		t.Error("empty map should give no keys")
	}
}
