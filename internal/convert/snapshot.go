package convert

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"holoscene/internal/engine2D"
)

const snapshotMagic = "HSNP"

// maxSnapshotFrame bounds a single decoded frame.
const maxSnapshotFrame = 64 << 20

// SnapshotWriter records composed frames as a stream of length-prefixed lz4
// blocks, each holding one JSON-encoded frame. A block with a zero
// compressed size is stored raw.
type SnapshotWriter struct {
	w      io.Writer
	c      lz4.Compressor
	buf    []byte
	frames int
	header bool
}

func NewSnapshotWriter(w io.Writer) *SnapshotWriter {
	return &SnapshotWriter{w: w}
}

func (sw *SnapshotWriter) Write(frame engine2D.Frame) error {
	if !sw.header {
		if _, err := io.WriteString(sw.w, snapshotMagic); err != nil {
			return err
		}
		sw.header = true
	}

	raw, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", frame.Number, err)
	}
	if bound := lz4.CompressBlockBound(len(raw)); cap(sw.buf) < bound {
		sw.buf = make([]byte, bound)
	}
	n, err := sw.c.CompressBlock(raw, sw.buf[:cap(sw.buf)])
	if err != nil {
		return fmt.Errorf("compressing frame %d: %w", frame.Number, err)
	}

	payload := sw.buf[:n]
	if n == 0 || n >= len(raw) {
		n = 0
		payload = raw
	}
	if err := binary.Write(sw.w, binary.LittleEndian, [2]uint32{uint32(len(raw)), uint32(n)}); err != nil {
		return err
	}
	if _, err := sw.w.Write(payload); err != nil {
		return err
	}
	sw.frames++
	return nil
}

// Frames counts frames written so far.
func (sw *SnapshotWriter) Frames() int {
	return sw.frames
}

type SnapshotReader struct {
	r      io.Reader
	header bool
	block  []byte
}

func NewSnapshotReader(r io.Reader) *SnapshotReader {
	return &SnapshotReader{r: r}
}

// Next returns the next recorded frame, or io.EOF after the last one.
func (sr *SnapshotReader) Next() (engine2D.Frame, error) {
	if !sr.header {
		magic := make([]byte, len(snapshotMagic))
		if _, err := io.ReadFull(sr.r, magic); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return engine2D.Frame{}, fmt.Errorf("truncated snapshot header")
			}
			return engine2D.Frame{}, err
		}
		if string(magic) != snapshotMagic {
			return engine2D.Frame{}, fmt.Errorf("not a frame snapshot (magic %q)", magic)
		}
		sr.header = true
	}

	var sizes [2]uint32
	if err := binary.Read(sr.r, binary.LittleEndian, &sizes); err != nil {
		if errors.Is(err, io.EOF) {
			return engine2D.Frame{}, io.EOF
		}
		return engine2D.Frame{}, fmt.Errorf("reading block header: %w", err)
	}
	rawSize, compressedSize := sizes[0], sizes[1]
	if rawSize > maxSnapshotFrame || compressedSize > maxSnapshotFrame {
		return engine2D.Frame{}, fmt.Errorf("snapshot block too large (%d bytes)", rawSize)
	}

	stored := rawSize
	if compressedSize > 0 {
		stored = compressedSize
	}
	if cap(sr.block) < int(stored) {
		sr.block = make([]byte, stored)
	}
	block := sr.block[:stored]
	if _, err := io.ReadFull(sr.r, block); err != nil {
		return engine2D.Frame{}, fmt.Errorf("reading block: %w", err)
	}

	raw := block
	if compressedSize > 0 {
		raw = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(block, raw)
		if err != nil {
			return engine2D.Frame{}, fmt.Errorf("decompressing block: %w", err)
		}
		raw = raw[:n]
	}

	var frame engine2D.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return engine2D.Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	return frame, nil
}

// ReadSnapshots reads every frame in r.
func ReadSnapshots(r io.Reader) ([]engine2D.Frame, error) {
	sr := NewSnapshotReader(r)
	var frames []engine2D.Frame
	for {
		frame, err := sr.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}
