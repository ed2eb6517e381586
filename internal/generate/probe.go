package generate

import (
	"bytes"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always decodes to 16-bit stereo.
const bytesPerFrame = 4

// ProbeDuration decodes the MP3 header stream to estimate playback length.
// ok is false when data is not decodable MP3.
func ProbeDuration(data []byte) (time.Duration, bool) {
	if len(data) == 0 {
		return 0, false
	}
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, false
	}
	rate := decoder.SampleRate()
	length := decoder.Length()
	if rate <= 0 || length <= 0 {
		return 0, false
	}
	frames := length / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(rate), true
}
