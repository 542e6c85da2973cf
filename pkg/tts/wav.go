package tts

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

const wavHeaderSize = 44

// WriteWAV wraps raw little-endian PCM in a minimal RIFF/WAVE container and
// writes it to path, creating parent directories as needed.
func WriteWAV(path string, pcm []byte, sampleRate, channels, bitDepth int) error {
	if sampleRate <= 0 || channels <= 0 || bitDepth <= 0 {
		return fmt.Errorf("invalid wav parameters: rate=%d channels=%d depth=%d", sampleRate, channels, bitDepth)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	blockAlign := channels * bitDepth / 8
	byteRate := sampleRate * blockAlign

	buf := make([]byte, 0, wavHeaderSize+len(pcm))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(pcm)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(bitDepth))
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pcm)))
	buf = append(buf, pcm...)

	return os.WriteFile(path, buf, 0o644)
}

// PCMDuration measures the playback time of raw PCM in seconds.
func PCMDuration(byteLen, sampleRate, channels, bitDepth int) float64 {
	byteRate := sampleRate * channels * bitDepth / 8
	if byteRate <= 0 {
		return 0
	}
	return float64(byteLen) / float64(byteRate)
}
