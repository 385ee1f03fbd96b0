package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open parses an SRT, WebVTT or ASS/SSA file, picked by extension.
func Open(path string) (*Subtitle, error) {
	format, err := FormatFromExtension(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(string(format)), err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Parse(file, format)
}

// subtitle format based on file extension
func FormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass":
		return FormatASS, nil
	case ".ssa":
		return FormatSSA, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}
