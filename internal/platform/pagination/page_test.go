package pagination

import "testing"

func TestClampPageSize(t *testing.T) {
	cfg := PageSizeConfig{Default: 20, Max: 100}

	tests := []struct {
		name  string
		value int
		want  int
	}{
		{"zero uses default", 0, 20},
		{"negative uses default", -5, 20},
		{"within range", 42, 42},
		{"above max clamps", 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPageSize(tt.value, cfg); got != tt.want {
				t.Fatalf("ClampPageSize(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestClampPageSizeZeroConfig(t *testing.T) {
	if got := ClampPageSize(0, PageSizeConfig{}); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
}
