package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// bytesPerFrame is one stereo 16-bit frame as produced by go-mp3.
const bytesPerFrame = 4

// memSource exposes downloaded audio as a seekable ReadCloser so the
// decoder can seek.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func newMemSource(data []byte) memSource {
	return memSource{Reader: bytes.NewReader(data)}
}

// mp3Stream adapts a go-mp3 decoder to beep.StreamSeekCloser.
type mp3Stream struct {
	dec    *mp3.Decoder
	src    io.Closer
	err    error
	pcm    []byte
	format beep.Format
}

// decodeMP3 prepares rc for streaming. rc should also implement io.Seeker
// for seeking to work.
func decodeMP3(rc io.ReadCloser) (*mp3Stream, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	s := &mp3Stream{
		dec: dec,
		src: rc,
		pcm: make([]byte, 8192),
		format: beep.Format{
			SampleRate:  beep.SampleRate(rate),
			NumChannels: 2,
			Precision:   2,
		},
	}
	return s, s.format, nil
}

// Stream fills samples with decoded PCM.
func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * bytesPerFrame
	if cap(s.pcm) < want {
		s.pcm = make([]byte, want)
	}
	buf := s.pcm[:want]

	read, err := io.ReadFull(s.dec, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := read / bytesPerFrame
	for i := range frames {
		off := i * bytesPerFrame
		samples[i][0] = pcmToFloat(buf[off:])
		samples[i][1] = pcmToFloat(buf[off+2:])
	}
	return frames, frames > 0
}

func pcmToFloat(b []byte) float64 {
	v := int16(binary.LittleEndian.Uint16(b)) //nolint:gosec // signed PCM sample
	return float64(v) / 32768.0
}

func (s *mp3Stream) Err() error {
	return s.err
}

// Len returns the total number of frames, 0 when unknown.
func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

// Seek moves to frame p, clamped to the stream bounds.
func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.src.Close()
}

var _ beep.StreamSeekCloser = (*mp3Stream)(nil)
