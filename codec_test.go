package bindict

import "testing"

func TestReadWriteUint24(t *testing.T) {
	buf := make([]byte, 8)
	putUint24(buf, 2, 0xABCDEF)
	got := readUint24(buf, 2)
	if got != 0xABCDEF {
		t.Errorf("readUint24 = %x, want %x", got, 0xABCDEF)
	}
}

func TestReadWriteUint(t *testing.T) {
	for _, k := range []int{1, 2, 3, 4} {
		buf := make([]byte, 4+k)
		var v uint32 = 0x01020304 >> uint((4-k)*8)
		putUint(buf, 1, k, v)
		got := readUint(buf, 1, k)
		if got != v {
			t.Errorf("k=%d: readUint = %x, want %x", k, got, v)
		}
	}
}

func TestClampByte(t *testing.T) {
	cases := []struct {
		in   int
		want byte
	}{
		{-5, 0},
		{0, 0},
		{200, 200},
		{255, 255},
		{256, 255},
		{10000, 255},
	}
	for _, c := range cases {
		if got := clampByte(c.in); got != c.want {
			t.Errorf("clampByte(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
