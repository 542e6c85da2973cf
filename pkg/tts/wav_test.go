package tts

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteWAV(t *testing.T) {
	pcm := make([]byte, 32000) // one second at 16kHz mono 16-bit
	path := filepath.Join(t.TempDir(), "nested", "out.wav")
	if err := WriteWAV(path, pcm, 16000, 1, 16); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != wavHeaderSize+len(pcm) {
		t.Fatalf("file size = %d, want %d", len(data), wavHeaderSize+len(pcm))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE magic")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Fatalf("sample rate = %d", rate)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); int(size) != len(pcm) {
		t.Fatalf("data size = %d", size)
	}
}

func TestWriteWAVRejectsBadParams(t *testing.T) {
	if err := WriteWAV(filepath.Join(t.TempDir(), "x.wav"), nil, 0, 1, 16); err == nil {
		t.Fatal("expected parameter error")
	}
}

func TestPCMDuration(t *testing.T) {
	if d := PCMDuration(32000, 16000, 1, 16); d != 1.0 {
		t.Fatalf("duration = %v, want 1.0", d)
	}
	if d := PCMDuration(100, 0, 1, 16); d != 0 {
		t.Fatalf("duration = %v, want 0 for zero rate", d)
	}
}

func TestEstimateDuration(t *testing.T) {
	d := EstimateDuration("merhaba", 0.1)
	if d < 0.69 || d > 0.71 {
		t.Fatalf("duration = %v, want ~0.7", d)
	}
	// rune count, not byte count
	short := EstimateDuration("ğüş", 0.1)
	if short < 0.29 || short > 0.31 {
		t.Fatalf("duration = %v, want ~0.3", short)
	}
}
