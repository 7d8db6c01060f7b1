package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/leet2video/internal/config"
	"github.com/ivlev/leet2video/internal/system"
)

type VideoEncoder interface {
	EncodeEpisode(ctx context.Context, frame image.Image, audioPath, videoPath string, params config.SegmentParams) error
}

type FFmpegEncoder struct {
	Encoder string
	Quality int
}

func NewFFmpegEncoder(encoder string, quality int) *FFmpegEncoder {
	if encoder == "" {
		encoder = "libx264"
	}
	return &FFmpegEncoder{Encoder: encoder, Quality: quality}
}

// EncodeEpisode holds one still frame for params.Duration seconds and muxes the narration.
// An empty audioPath produces a silent video.
func (e *FFmpegEncoder) EncodeEpisode(
	ctx context.Context,
	frame image.Image,
	audioPath string,
	videoPath string,
	params config.SegmentParams,
) error {
	inputW, inputH := frame.Bounds().Dx(), frame.Bounds().Dy()
	args := e.buildFFmpegArgs(inputW, inputH, audioPath, videoPath, params)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Один кадр raw RGBA, tpad размножит его до нужной длительности
	if err := e.writeRawRGBA(stdin, frame); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("write raw error: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, out.String())
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(inputW, inputH int, audioPath, videoPath string, params config.SegmentParams) []string {
	filter := fmt.Sprintf("tpad=stop_mode=clone:stop_duration=%f", params.Duration)
	if params.Filter != "" {
		filter += "," + params.Filter
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", inputW, inputH),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-b:a", "192k")
	}
	args = append(args,
		"-vf", filter,
		"-t", fmt.Sprintf("%f", params.Duration),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", e.Encoder,
	)
	args = append(args, QualityArgs(e.Encoder, e.Quality)...)
	return append(args, videoPath)
}

// QualityArgs maps a quality value onto the rate control flag of each encoder family
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func (e *FFmpegEncoder) writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if ok && rgba.Stride == bounds.Dx()*4 && rgba.Rect.Min.X == 0 && rgba.Rect.Min.Y == 0 {
		_, err := w.Write(rgba.Pix)
		return err
	}

	buf := system.GetImage(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	defer system.PutImage(buf)
	draw.Draw(buf, buf.Rect, img, bounds.Min, draw.Src)
	_, err := w.Write(buf.Pix)
	return err
}
