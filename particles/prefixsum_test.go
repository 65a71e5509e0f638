package particles

import "testing"

func TestExclusivePrefixSumBasic(t *testing.T) {
	src := []int32{3, 1, 4, 1, 5, 9, 2, 6}
	dst := make([]int32, len(src))
	total := ExclusivePrefixSum(dst, src)

	want := []int32{0, 3, 4, 8, 9, 14, 23, 25}
	for i, w := range want {
		if dst[i] != w {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], w)
		}
	}
	if total != 31 {
		t.Fatalf("total = %d, want 31", total)
	}
}

func TestExclusivePrefixSumEmpty(t *testing.T) {
	if total := ExclusivePrefixSum(nil, nil); total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
}

func TestExclusivePrefixSumSingle(t *testing.T) {
	dst := make([]int32, 1)
	total := ExclusivePrefixSum(dst, []int32{7})
	if dst[0] != 0 || total != 7 {
		t.Fatalf("dst[0]=%d total=%d, want 0,7", dst[0], total)
	}
}

func TestExclusivePrefixSumNonPowerOfTwo(t *testing.T) {
	src := make([]int32, 13)
	for i := range src {
		src[i] = int32(i + 1)
	}
	dst := make([]int32, len(src))
	total := ExclusivePrefixSum(dst, src)

	var sum int32
	for i := range src {
		if dst[i] != sum {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], sum)
		}
		sum += src[i]
	}
	if total != sum {
		t.Fatalf("total = %d, want %d", total, sum)
	}
}
