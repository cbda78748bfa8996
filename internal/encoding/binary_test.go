package encoding

import (
	"testing"
)

func TestPack4(t *testing.T) {
	cases := []struct {
		a, b, c, d uint8
		want       uint32
	}{
		{0, 0, 0, 0, 0},
		{1, 0, 0, 0, 1},
		{0, 1, 0, 0, 256},
		{0, 0, 1, 0, 65536},
		{0, 0, 0, 1, 16777216},
		{255, 255, 255, 255, 0xFFFFFFFF},
		{3, 2, 1, 13, 3 + 2*256 + 1*65536 + 13*16777216},
	}

	for _, tt := range cases {
		got := Pack4(tt.a, tt.b, tt.c, tt.d)
		if got != tt.want {
			t.Errorf("Pack4(%d, %d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, tt.d, got, tt.want)
		}

		a, b, c, d := Unpack4(got)
		if a != tt.a || b != tt.b || c != tt.c || d != tt.d {
			t.Errorf("Unpack4(%d) = (%d, %d, %d, %d)", got, a, b, c, d)
		}
	}
}

func TestPixel(t *testing.T) {
	pix := make([]byte, 8)
	PutPixel(pix[4:], Pack4(10, 20, 30, 40))

	if pix[4] != 10 || pix[5] != 20 || pix[6] != 30 || pix[7] != 40 {
		t.Fatalf("unexpected channel layout %v", pix[4:])
	}
	if Pixel(pix[4:]) != Pack4(10, 20, 30, 40) {
		t.Errorf("Pixel did not read back packed value")
	}
	if Pixel(pix[:4]) != 0 {
		t.Errorf("neighbouring pixel was written")
	}
}
