package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// Sink plays a base64 audio payload. Play returns a completion channel that
// receives the playback outcome exactly once and is then closed. The sink
// does not queue or interrupt; callers serialize their own Play calls.
type Sink interface {
	Play(ctx context.Context, audioBase64 string) (<-chan error, error)
}

// WriterSink decodes the payload and streams it to Out. The decoded buffer
// lives only for the duration of the playback call.
type WriterSink struct {
	Out io.Writer
}

func NewWriterSink(out io.Writer) *WriterSink {
	if out == nil {
		out = io.Discard
	}
	return &WriterSink{Out: out}
}

func (s *WriterSink) Play(ctx context.Context, audioBase64 string) (<-chan error, error) {
	data, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return nil, fmt.Errorf("audio payload is not valid base64: %w", err)
	}

	done := make(chan error, 1)

	go func(buf []byte) {
		defer close(done)

		if ctx.Err() != nil {
			done <- ctx.Err()
			return
		}

		_, err := s.Out.Write(buf)
		done <- err
	}(data)

	return done, nil
}
