// Package audio decodes the speech clips returned by the TTS backend and
// picks on-device voices for local synthesis.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// Clip format produced by the TTS backend
const (
	SampleRate = 24000
	Channels   = 1
)

// ErrOddLength indicates a PCM payload that is not a whole number of samples
var ErrOddLength = errors.New("pcm payload has odd byte length")

// Clip is a decoded mono clip of normalized samples in [-1, 1]
type Clip struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Duration returns the playing time of the clip
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// DecodePCM decodes base64 raw 16-bit little-endian mono PCM at 24 kHz
func DecodePCM(payload string) (*Clip, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	samples, err := DecodeSamples(raw)
	if err != nil {
		return nil, err
	}
	return &Clip{Samples: samples, SampleRate: SampleRate, Channels: Channels}, nil
}

// DecodeSamples converts raw PCM16LE bytes to samples divided by 32768
func DecodeSamples(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	out := make([]float32, len(raw)/2)
	for i := range out {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		out[i] = float32(s) / 32768.0
	}
	return out, nil
}

// EncodePCM encodes 16-bit samples as base64 PCM16LE
func EncodePCM(samples []int16) string {
	return base64.StdEncoding.EncodeToString(EncodeSamples(samples))
}

// EncodeSamples converts 16-bit samples to raw little-endian bytes
func EncodeSamples(samples []int16) []byte {
	raw := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(s))
	}
	return raw
}

// Quantize converts normalized samples back to 16-bit, clamping to range
func Quantize(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * 32768.0)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return out
}
