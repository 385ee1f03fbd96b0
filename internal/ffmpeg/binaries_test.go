package ffmpeg

import (
	"errors"
	"testing"
)

func TestLocate(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }
	onPath := map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"}
	lookPath := func(name string) (string, error) {
		if p, ok := onPath[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}

	paths, err := locate(getenv, lookPath)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if paths.FFmpeg != "/usr/bin/ffmpeg" || paths.FFprobe != "/usr/bin/ffprobe" {
		t.Errorf("paths = %+v", paths)
	}

	env[ffmpegEnv] = "/opt/ffmpeg"
	paths, err = locate(getenv, lookPath)
	if err != nil || paths.FFmpeg != "/opt/ffmpeg" {
		t.Errorf("override ignored: %+v %v", paths, err)
	}

	delete(onPath, "ffprobe")
	if _, err := locate(getenv, lookPath); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
