// Package video assembles ordered raster frames into a video file.
package video

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
)

// BaseFrameRate is the playback rate at 100% speed.
const BaseFrameRate = 24

// FrameRate scales the base rate by a speed percentage.
func FrameRate(speedPercent int) float64 {
	return BaseFrameRate * float64(speedPercent) / 100
}

// Frame is one rendered frame, identified by its 1-based turn number.
type Frame struct {
	Turn  int
	Image image.Image
}

// FrameSink accepts equally sized frames in strictly ascending turn
// order. No reordering, no dropping.
type FrameSink interface {
	Append(Frame) error
	Close() error
}

// FFmpegAssembler pipes raw rgb24 frames into an ffmpeg child process
// that encodes the output video. Frames must arrive in ascending turn
// order starting at 1; anything else is rejected.
type FFmpegAssembler struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	width, height int
	next          int
	buf           []byte // reused rgb24 scratch buffer
}

// NewFFmpegAssembler starts an ffmpeg process encoding to path at the
// given frame rate.
func NewFFmpegAssembler(path string, width, height int, fps float64) (*FFmpegAssembler, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %g", fps)
	}
	a := &FFmpegAssembler{
		width:  width,
		height: height,
		next:   1,
		buf:    make([]byte, width*height*3),
	}
	a.cmd = exec.Command("ffmpeg",
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		path,
	)
	a.cmd.Stderr = &a.stderr

	stdin, err := a.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdin: %w", err)
	}
	a.stdin = stdin

	if err := a.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return a, nil
}

// Append encodes one frame. The frame's turn number must be exactly
// the next expected one and its image must match the video size.
func (a *FFmpegAssembler) Append(f Frame) error {
	if f.Turn != a.next {
		return fmt.Errorf("frame for turn %d appended out of order, expected turn %d", f.Turn, a.next)
	}
	buf, err := rgb24Bytes(f.Image, a.width, a.height, a.buf)
	if err != nil {
		return fmt.Errorf("frame %d: %w", f.Turn, err)
	}
	if _, err := a.stdin.Write(buf); err != nil {
		return fmt.Errorf("write frame %d: %w (ffmpeg: %s)", f.Turn, err, lastLine(a.stderr.Bytes()))
	}
	a.next++
	return nil
}

// Close signals end of input and waits for ffmpeg to finish encoding.
func (a *FFmpegAssembler) Close() error {
	if err := a.stdin.Close(); err != nil {
		return fmt.Errorf("close ffmpeg stdin: %w", err)
	}
	if err := a.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(a.stderr.Bytes()))
	}
	return nil
}

// rgb24Bytes packs an image into the rgb24 layout ffmpeg expects,
// reusing buf when it is large enough.
func rgb24Bytes(img image.Image, width, height int, buf []byte) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return nil, fmt.Errorf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
	need := width * height * 3
	if cap(buf) < need {
		buf = make([]byte, need)
	}
	buf = buf[:need]

	if rgba, ok := img.(*image.RGBA); ok {
		i := 0
		for y := 0; y < height; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
			for x := 0; x < width; x++ {
				buf[i] = row[x*4]
				buf[i+1] = row[x*4+1]
				buf[i+2] = row[x*4+2]
				i += 3
			}
		}
		return buf, nil
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			buf[i] = byte(r >> 8)
			buf[i+1] = byte(g >> 8)
			buf[i+2] = byte(bl >> 8)
			i += 3
		}
	}
	return buf, nil
}

func lastLine(out []byte) string {
	out = bytes.TrimSpace(out)
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	return string(out)
}
