package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jxwalker/hashcheck/internal/config"
	"github.com/jxwalker/hashcheck/internal/hasher"
)

func TestNewDisabledIsNil(t *testing.T) {
	if m := New(config.Default()); m != nil {
		t.Fatalf("expected nil manager when disabled")
	}
	var m *Manager
	m.ObserveHash(KindText, 3)
	m.ObserveComparison(hasher.Match)
	m.IncErrors("compare")
	if err := m.Write(); err != nil {
		t.Fatalf("nil Write: %v", err)
	}
}

func TestCountersAndWrite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "prom", "hashcheck.prom")
	cfg := config.Default()
	cfg.Metrics.PrometheusTextfile = config.PromTextfile{Enabled: true, Path: p}
	m := New(cfg)
	if m == nil {
		t.Fatalf("expected manager")
	}

	m.ObserveHash(KindText, 3)
	m.ObserveHash(KindFile, 10)
	m.ObserveHash(KindFile, 0)
	m.ObserveComparison(hasher.Match)
	m.ObserveComparison(hasher.Mismatch)
	m.ObserveComparison(hasher.Mismatch)
	m.IncErrors("hash_file")

	if got := testutil.ToFloat64(m.hashesTotal.WithLabelValues(KindFile)); got != 2 {
		t.Fatalf("file hashes=%v want 2", got)
	}
	if got := testutil.ToFloat64(m.bytesHashed); got != 13 {
		t.Fatalf("bytes=%v want 13", got)
	}
	if got := testutil.ToFloat64(m.comparisonsTotal.WithLabelValues("mismatch")); got != 2 {
		t.Fatalf("mismatches=%v want 2", got)
	}

	if err := m.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{
		`hashcheck_hashes_total{kind="text"} 1`,
		`hashcheck_comparisons_total{outcome="match"} 1`,
		`hashcheck_errors_total{op="hash_file"} 1`,
		"hashcheck_bytes_hashed_total 13",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}
