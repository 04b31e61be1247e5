// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100.0, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			// Allow for rounding differences of ±1
			diff := math.Abs(float64(got) - float64(tt.want))
			if diff > 1 {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeInt16LE(t *testing.T) {
	t.Parallel()

	src := []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80, 0xff, 0x7f}
	dst := make([]int16, 4)

	n := DecodeInt16LE(dst, src)
	if n != 4 {
		t.Fatalf("DecodeInt16LE() = %d, want 4", n)
	}

	want := []int16{1, -1, math.MinInt16, math.MaxInt16}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestDecodeInt16LE_Bounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dstLen int
		srcLen int
		want   int
	}{
		{"odd trailing byte", 4, 5, 2},
		{"dst smaller than src", 1, 8, 1},
		{"empty src", 4, 0, 0},
		{"empty dst", 0, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DecodeInt16LE(make([]int16, tt.dstLen), make([]byte, tt.srcLen))
			if got != tt.want {
				t.Errorf("DecodeInt16LE() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeInt16LE_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, -100, math.MaxInt16, math.MinInt16, 12345}
	buf := make([]byte, len(samples)*2)

	if n := EncodeInt16LE(buf, samples); n != len(buf) {
		t.Fatalf("EncodeInt16LE() = %d, want %d", n, len(buf))
	}

	// Explicit byte layout check for the first non-zero sample
	if buf[2] != 100 || buf[3] != 0 {
		t.Errorf("sample 1 bytes = %#x %#x, want 0x64 0x00", buf[2], buf[3])
	}

	got := make([]int16, len(samples))
	DecodeInt16LE(got, buf)
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], samples[i])
		}
	}
}

// BenchmarkDecodeInt16LE simulates decoding one 4 KiB read block
func BenchmarkDecodeInt16LE(b *testing.B) {
	src := make([]byte, 4096)
	dst := make([]int16, 2048)

	b.ReportAllocs()

	for b.Loop() {
		DecodeInt16LE(dst, src)
	}
}

// TestDecodeInt16LE_ZeroAllocs verifies no heap allocations
func TestDecodeInt16LE_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := make([]byte, 4096)
	dst := make([]int16, 2048)

	allocs := testing.AllocsPerRun(100, func() {
		DecodeInt16LE(dst, src)
	})
	if allocs > 0 {
		t.Errorf("DecodeInt16LE allocated %v times, want 0", allocs)
	}
}
