// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/wav"
)

func TestSizeBuffers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ioBlock int
		format  audio.Format
		want    Sizes
	}{
		{
			name:    "mono 16 bit",
			ioBlock: 4096,
			format:  audio.Format{Channels: 1, SampleRate: 44100, BitsPerSample: 16, BlockAlign: 2},
			want:    Sizes{SamplesPerRead: 2048, InputCapacity: 2048, OutputCapacity: 2560 + 7200},
		},
		{
			name:    "stereo 16 bit",
			ioBlock: 4096,
			format:  audio.Format{Channels: 2, SampleRate: 48000, BitsPerSample: 16, BlockAlign: 4},
			want:    Sizes{SamplesPerRead: 2048, InputCapacity: 4096, OutputCapacity: 2560 + 7200},
		},
		{
			name:    "ceil of 1.25",
			ioBlock: 6,
			format:  audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16, BlockAlign: 2},
			want:    Sizes{SamplesPerRead: 3, InputCapacity: 3, OutputCapacity: 4 + 7200},
		},
		{
			name:    "floor of block",
			ioBlock: 4097,
			format:  audio.Format{Channels: 2, SampleRate: 22050, BitsPerSample: 16, BlockAlign: 4},
			want:    Sizes{SamplesPerRead: 2048, InputCapacity: 4096, OutputCapacity: 2560 + 7200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SizeBuffers(tt.ioBlock, tt.format)
			if err != nil {
				t.Fatalf("SizeBuffers() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("SizeBuffers() = %+v, want %+v", got, tt.want)
			}

			exact := int(math.Ceil(1.25*float64(got.SamplesPerRead))) + 7200
			if got.OutputCapacity != exact {
				t.Errorf("OutputCapacity = %d, want ceil(1.25*%d)+7200 = %d",
					got.OutputCapacity, got.SamplesPerRead, exact)
			}
		})
	}
}

func TestSizeBuffers_Errors(t *testing.T) {
	t.Parallel()

	_, err := SizeBuffers(4096, audio.Format{})
	if !errors.Is(err, wav.ErrMalformedHeader) {
		t.Errorf("zero format error = %v, want ErrMalformedHeader", err)
	}

	_, err = SizeBuffers(1, audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16, BlockAlign: 2})
	if err == nil {
		t.Error("1 byte block: expected error")
	}
}

func TestNewChunkBuffers(t *testing.T) {
	t.Parallel()

	s := Sizes{SamplesPerRead: 10, InputCapacity: 20, OutputCapacity: 7213}
	b := NewChunkBuffers(s)

	if len(b.Input) != 20 || len(b.Output) != 7213 || len(b.Flush) != FlushBufferSize {
		t.Errorf("buffer lengths = %d/%d/%d", len(b.Input), len(b.Output), len(b.Flush))
	}
}
