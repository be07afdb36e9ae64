package node

import "testing"

func TestChannelsFirstBatched(t *testing.T) {
	// 1x2x2x3 NHWC with distinct values per element.
	in := NewTensor(1, 2, 2, 3)
	for i := range in.Data {
		in.Data[i] = float32(i)
	}

	out, err := in.ChannelsFirst()
	if err != nil {
		t.Fatal(err)
	}

	wantShape := []int{1, 3, 2, 2}
	for i, d := range wantShape {
		if out.Shape[i] != d {
			t.Fatalf("shape = %v, want %v", out.Shape, wantShape)
		}
	}

	// Channel 0 plane should hold the stride-3 elements 0,3,6,9.
	want := []float32{0, 3, 6, 9}
	for i, w := range want {
		if out.Data[i] != w {
			t.Errorf("out.Data[%d] = %g, want %g", i, out.Data[i], w)
		}
	}
}

func TestChannelsFirstPromotesSingleImage(t *testing.T) {
	in := NewTensor(4, 5, 3)
	out, err := in.ChannelsFirst()
	if err != nil {
		t.Fatal(err)
	}
	wantShape := []int{1, 3, 4, 5}
	for i, d := range wantShape {
		if out.Shape[i] != d {
			t.Fatalf("shape = %v, want %v", out.Shape, wantShape)
		}
	}
}

func TestChannelsFirstRejectsBadRank(t *testing.T) {
	if _, err := NewTensor(2, 2).ChannelsFirst(); err == nil {
		t.Error("expected error for rank-2 tensor")
	}
	if _, err := NewTensor(2, 2, 2, 2, 2).ChannelsFirst(); err == nil {
		t.Error("expected error for rank-5 tensor")
	}
}
