package tunnel

import "testing"

func TestDefaultWalls(t *testing.T) {
	tun := Default()
	want := Walls{XMin: -6, XMax: 14, YMin: -5, YMax: 5, ZMin: 0, ZMax: 8}
	if tun.Walls != want {
		t.Errorf("default walls = %+v, want %+v", tun.Walls, want)
	}
}

func TestDefaultMaxObjectDimensions(t *testing.T) {
	l, w, h := Default().MaxObjectDimensions()
	if l != 10 || w != 2 || h != 1 {
		t.Errorf("max object dimensions = (%v, %v, %v), want (10, 2, 1)", l, w, h)
	}
}

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	tests := []struct {
		name    string
		l, w, h float64
	}{
		{"zero length", 0, 10, 8},
		{"zero width", 20, 0, 8},
		{"zero height", 20, 10, 0},
		{"negative length", -20, 10, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.l, tt.w, tt.h)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsConfigurationError(err) {
				t.Errorf("error %v is not a ConfigurationError", err)
			}
		})
	}
}

func TestWallsValidate(t *testing.T) {
	good := Walls{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: 0, ZMax: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("valid walls rejected: %v", err)
	}

	bad := good
	bad.YMax = bad.YMin
	if err := bad.Validate(); err == nil {
		t.Error("degenerate walls accepted")
	}
}
