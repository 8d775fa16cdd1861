// Package video renders still images and narration into a story video.
package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"studio/config"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Scene is one still image shown for the length of its narration
type Scene struct {
	ImagePath string
	// AudioPath is empty for a silent scene
	AudioPath string
}

// Composer builds videos with ffmpeg
type Composer struct {
	workDir string
	logger  zerolog.Logger
}

// NewComposer creates a composer that keeps intermediate clips in workDir
func NewComposer(workDir string, logger zerolog.Logger) *Composer {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Composer{
		workDir: workDir,
		logger:  logger.With().Str("component", "video").Logger(),
	}
}

// Compose renders every scene into its own clip and joins the clips into
// outputPath in order.
func (c *Composer) Compose(ctx context.Context, scenes []Scene, outputPath string) error {
	if len(scenes) == 0 {
		return errors.New("video: no scenes to compose")
	}

	base := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	clips := make([]string, 0, len(scenes))
	defer func() {
		for _, clip := range clips {
			_ = os.Remove(clip)
		}
	}()

	for i, scene := range scenes {
		clip := filepath.Join(c.workDir, fmt.Sprintf("%s_clip_%d.mp4", base, i))
		if err := c.renderScene(ctx, scene, clip); err != nil {
			return fmt.Errorf("video: scene %d: %w", i, err)
		}
		clips = append(clips, clip)
	}

	listPath := filepath.Join(c.workDir, base+"_clips.txt")
	if err := os.WriteFile(listPath, []byte(concatList(clips)), 0o644); err != nil {
		return fmt.Errorf("video: write concat list: %w", err)
	}
	defer os.Remove(listPath)

	joined := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy", "movflags": "+faststart"}).
		OverWriteOutput()
	if err := run(ctx, joined); err != nil {
		return fmt.Errorf("video: concat failed: %w", err)
	}

	c.logger.Info().Int("scenes", len(scenes)).Str("output", outputPath).Msg("🎞  video composed")
	return nil
}

// renderScene turns a still image and its narration into a clip with a slow zoom
func (c *Composer) renderScene(ctx context.Context, scene Scene, clipPath string) error {
	duration := config.SilentSceneDuration
	var audio *ffmpeg.Stream

	if scene.AudioPath != "" {
		d, err := probeDuration(scene.AudioPath)
		if err != nil {
			return err
		}
		duration = d
		audio = ffmpeg.Input(scene.AudioPath)
	} else {
		// Silent clips still need an audio track for the concat demuxer
		audio = ffmpeg.Input("anullsrc=channel_layout=stereo:sample_rate=44100",
			ffmpeg.KwArgs{"f": "lavfi", "t": formatSeconds(duration)})
	}

	image := ffmpeg.Input(scene.ImagePath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": config.VideoFPS,
		"t":         formatSeconds(duration),
	})
	zoomed := image.
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", config.ImageSize, config.ImageSize)}).
		Filter("zoompan", ffmpeg.Args{zoomExpr()})

	stream := ffmpeg.Output([]*ffmpeg.Stream{zoomed, audio}, clipPath, ffmpeg.KwArgs{
		"c:v":     config.VideoCodec,
		"c:a":     config.AudioCodec,
		"b:a":     config.AudioBitrate,
		"ar":      44100,
		"ac":      2,
		"preset":  config.VideoPreset,
		"pix_fmt": "yuv420p",
		"r":       config.VideoFPS,
		"t":       formatSeconds(duration),
	}).OverWriteOutput()

	return run(ctx, stream)
}

// zoomExpr grows the frame by 5% per second around its centre
func zoomExpr() string {
	return fmt.Sprintf("z='1+0.05*on/%d':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%dx%d:fps=%d",
		config.VideoFPS, config.ImageSize, config.ImageSize, config.VideoFPS)
}

// concatList is the input file of the concat demuxer
func concatList(clips []string) string {
	var b strings.Builder
	for _, clip := range clips {
		path := filepath.ToSlash(clip)
		path = strings.ReplaceAll(path, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", path)
	}
	return b.String()
}

func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	return parseProbeDuration(out)
}

// parseProbeDuration reads format.duration from ffprobe JSON output
func parseProbeDuration(probe string) (float64, error) {
	var info struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probe), &info); err != nil {
		return 0, fmt.Errorf("decode probe output: %w", err)
	}
	d, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", info.Format.Duration)
	}
	return d, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

// run executes a compiled ffmpeg stream, killing it when ctx is done
func run(ctx context.Context, stream *ffmpeg.Stream) error {
	cmd := stream.Compile()
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg failed to start: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return ffmpegError(err, stderr.String())
		}
		return nil
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func ffmpegError(err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		lines := strings.Split(strings.TrimSpace(stderr), "\n")
		return fmt.Errorf("ffmpeg exited with %d: %s", exitErr.ExitCode(), lines[len(lines)-1])
	}
	return fmt.Errorf("ffmpeg failed: %w", err)
}
