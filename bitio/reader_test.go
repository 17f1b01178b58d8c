package bitio

import "testing"

func TestReadSub(t *testing.T) {
	// 0b10100010, 0b11000000
	data := []byte{0b10100010, 0b11000000}
	r := NewReader(data)

	sizes := []int{1, 1, 1, 5, 2}
	want := []uint8{1, 0, 1, 2, 3}

	for i, n := range sizes {
		got, err := r.ReadSub(n)
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != want[i] {
			t.Fatalf("read %d (%d bits): have %d, want %d", i, n, got, want[i])
		}
	}
}

func TestReadSubAlignmentError(t *testing.T) {
	r := NewReader([]byte{0xFF})

	if _, err := r.ReadSub(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ReadSub(6); err != ErrAlignment {
		t.Fatalf("have %v, want ErrAlignment", err)
	}
}

func TestReadSubPastEnd(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.ReadSub(8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ReadSub(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("read past end: have %d, want 0", got)
	}
}

func TestReadSubMultiByte(t *testing.T) {
	r := NewReader([]byte{0b11110000, 0b00001111})

	if got, _ := r.ReadSub(4); got != 0b1111 {
		t.Fatalf("byte 0 high nibble: have %b", got)
	}
	if got, _ := r.ReadSub(4); got != 0 {
		t.Fatalf("byte 0 low nibble: have %b", got)
	}
	if got, _ := r.ReadSub(4); got != 0 {
		t.Fatalf("byte 1 high nibble: have %b", got)
	}
	if got, _ := r.ReadSub(4); got != 0b1111 {
		t.Fatalf("byte 1 low nibble: have %b", got)
	}
}
