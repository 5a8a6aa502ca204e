//go:build !pprof

package profile

import "testing"

func TestStart_Disabled(t *testing.T) {
	if m := Modes(); len(m) != 0 {
		t.Errorf("Modes() = %v, want none without the %s tag", m, Tag)
	}

	tests := []struct {
		name string
		p    Profiler
	}{
		{"zero", Profiler{}},
		{"cpu", Profiler{Mode: "cpu", Path: t.TempDir()}},
		{"unknown", Profiler{Mode: "bogus", Quiet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.p.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", s)
			}

			s.Stop()
			s.Stop()
		})
	}
}
