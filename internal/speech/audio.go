package speech

import (
	"encoding/binary"
	"math"
	"time"
)

// TonePCM generates little-endian 16-bit mono PCM of a sine tone. The
// probe sends synthetic audio so it needs no asset files; the point is
// to exercise the streaming path, not recognition quality.
func TonePCM(sampleRate int, freqHz float64, d time.Duration) []byte {
	samples := int(float64(sampleRate) * d.Seconds())
	buf := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sampleRate))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*0.3*math.MaxInt16)))
	}
	return buf
}

// chunkAudio splits PCM into frames of at most size bytes.
func chunkAudio(pcm []byte, size int) [][]byte {
	var chunks [][]byte
	for len(pcm) > 0 {
		n := size
		if n > len(pcm) {
			n = len(pcm)
		}
		chunks = append(chunks, pcm[:n])
		pcm = pcm[n:]
	}
	return chunks
}
