package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/waveline/internal/ffmpeg"
	"github.com/mgpai22/waveline/internal/waveform"
)

// settings for peak extraction
type PeakOptions struct {
	SampleRate      int // decode rate in Hz
	SamplesPerBlock int // samples folded into one peak
}

func DefaultPeakOptions() PeakOptions {
	return PeakOptions{
		SampleRate:      8000,
		SamplesPerBlock: 256,
	}
}

type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetDuration asks ffprobe for the container duration of a media file.
func GetDuration(ctx context.Context, path string) (time.Duration, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	probe, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, probe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return parseProbeDuration(stdout.Bytes())
}

func parseProbeDuration(data []byte) (time.Duration, error) {
	var pf probeFormat
	if err := json.Unmarshal(data, &pf); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(pf.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe reported no duration: %w", err)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

// ExtractPeaks decodes the first audio stream of a media file to mono
// 16-bit PCM and folds it into a peak envelope.
func ExtractPeaks(ctx context.Context, inputPath string, opts PeakOptions) (*waveform.Envelope, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}
	folder, err := NewPeakFolder(opts.SampleRate, opts.SamplesPerBlock)
	if err != nil {
		return nil, err
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	// mono s16le on stdout, straight into the folder
	cmd := ffmpeg.Input(inputPath).
		Output("pipe:", ffmpeg.KwArgs{
			"vn": "",
			"f":  "s16le",
			"ac": 1,
			"ar": opts.SampleRate,
		}).
		WithOutput(folder).
		SetFfmpegPath(ffmpegPath).
		Compile()
	stop := context.AfterFunc(ctx, func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	})
	defer stop()

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("peak extraction failed: %w", err)
	}

	return folder.Envelope(), nil
}

type mediaKind int

const (
	kindUnknown mediaKind = iota
	kindAudio
	kindVideo
)

var extensionKinds = map[string]mediaKind{
	".mp3": kindAudio, ".wav": kindAudio, ".aac": kindAudio, ".flac": kindAudio,
	".ogg": kindAudio, ".opus": kindAudio, ".m4a": kindAudio,
	".mp4": kindVideo, ".mkv": kindVideo, ".avi": kindVideo, ".mov": kindVideo,
	".webm": kindVideo, ".m4v": kindVideo, ".mpeg": kindVideo, ".mpg": kindVideo,
}

func kindOf(path string) mediaKind {
	return extensionKinds[strings.ToLower(filepath.Ext(path))]
}

func IsVideoFile(path string) bool {
	return kindOf(path) == kindVideo
}

func IsAudioFile(path string) bool {
	return kindOf(path) == kindAudio
}

// IsMediaFile reports whether ffmpeg is expected to find audio in path.
func IsMediaFile(path string) bool {
	return kindOf(path) != kindUnknown
}
