package tts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultSampleRate is the LINEAR16 rate Cloud TTS returns by default
const DefaultSampleRate = 24000

// ErrBadWAV is returned for audio that is not RIFF/WAVE PCM
var ErrBadWAV = errors.New("tts: invalid wav data")

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// parseWAV returns the fmt chunk and the raw PCM payload
func parseWAV(data []byte) (wavFormat, []byte, error) {
	var f wavFormat
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return f, nil, ErrBadWAV
	}

	var pcm []byte
	haveFmt := false
	for pos := 12; pos+8 <= len(data); {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		end := body + size
		if end > len(data) {
			// espeak writes 0x7fffffff when streaming; take what is there
			end = len(data)
		}
		switch id {
		case "fmt ":
			if end-body < 16 {
				return f, nil, ErrBadWAV
			}
			if err := binary.Read(bytes.NewReader(data[body:body+16]), binary.LittleEndian, &f); err != nil {
				return f, nil, fmt.Errorf("%w: %v", ErrBadWAV, err)
			}
			haveFmt = true
		case "data":
			pcm = data[body:end]
		}
		pos = end + size%2
	}
	if !haveFmt || pcm == nil {
		return f, nil, ErrBadWAV
	}
	return f, pcm, nil
}

func encodeWAV(f wavFormat, pcm []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, f)
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// Silence returns a mono 16-bit WAV of the given length
func Silence(d time.Duration, sampleRate int) []byte {
	samples := int(math.Ceil(d.Seconds() * float64(sampleRate)))
	f := wavFormat{
		AudioFormat:   1,
		Channels:      1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
	}
	return encodeWAV(f, make([]byte, samples*2))
}

// JoinWAV concatenates clips that share one PCM format
func JoinWAV(clips [][]byte) ([]byte, error) {
	if len(clips) == 0 {
		return nil, ErrBadWAV
	}

	var format wavFormat
	var pcm []byte
	for i, clip := range clips {
		f, data, err := parseWAV(clip)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i+1, err)
		}
		if i == 0 {
			format = f
		} else if f != format {
			return nil, fmt.Errorf("clip %d: format %d Hz/%d ch differs from %d Hz/%d ch",
				i+1, f.SampleRate, f.Channels, format.SampleRate, format.Channels)
		}
		pcm = append(pcm, data...)
	}
	return encodeWAV(format, pcm), nil
}

// WAVDuration returns the playback length of a WAV clip
func WAVDuration(data []byte) (time.Duration, error) {
	f, pcm, err := parseWAV(data)
	if err != nil {
		return 0, err
	}
	if f.ByteRate == 0 {
		return 0, ErrBadWAV
	}
	return time.Duration(float64(len(pcm)) / float64(f.ByteRate) * float64(time.Second)), nil
}
