package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// ErrNotFound is returned when a binary is neither configured nor on PATH.
var ErrNotFound = errors.New("ffmpeg binaries not found")

const (
	ffmpegEnv  = "WAVELINE_FFMPEG_PATH"
	ffprobeEnv = "WAVELINE_FFPROBE_PATH"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves both binaries once per process.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = locate(os.Getenv, exec.LookPath)
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

// environment overrides win over PATH
func locate(getenv func(string) string, lookPath func(string) (string, error)) (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  getenv(ffmpegEnv),
		FFprobe: getenv(ffprobeEnv),
	}
	if paths.FFmpeg == "" {
		if found, err := lookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := lookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}

	switch {
	case paths.FFmpeg == "":
		return BinaryPaths{}, fmt.Errorf("%w: install ffmpeg or set %s", ErrNotFound, ffmpegEnv)
	case paths.FFprobe == "":
		return BinaryPaths{}, fmt.Errorf("%w: install ffprobe or set %s", ErrNotFound, ffprobeEnv)
	}
	return paths, nil
}
