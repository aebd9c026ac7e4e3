// Package export turns composed figures into image files. The figure walk
// emits primitive drawing operations through the Canvas interface, with
// one backend per output format (PNG, SVG, PDF).
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidResolution is returned for resolution strings that are neither
// a known preset nor a WxH literal.
var ErrInvalidResolution = errors.New("invalid resolution")

// resolutions are the named presets accepted anywhere a resolution string
// is taken.
var resolutions = map[string][2]int{
	"1080p": {1920, 1080},
	"4k":    {3840, 2160},
	"720p":  {1280, 720},
}

// ResolutionNames lists the preset names, for error messages and help text.
func ResolutionNames() []string {
	return []string{"1080p", "4k", "720p"}
}

// ParseResolution resolves a preset name (1080p, 4k, 720p) or a literal
// "WxH" string into pixel dimensions. Empty input takes the 1080p default.
func ParseResolution(s string) (width, height int, err error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		lower = "1080p"
	}

	if wh, ok := resolutions[lower]; ok {
		return wh[0], wh[1], nil
	}

	if parts := strings.SplitN(lower, "x", 2); len(parts) == 2 {
		w, werr := strconv.Atoi(parts[0])
		h, herr := strconv.Atoi(parts[1])
		if werr == nil && herr == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: %q (use %s or WxH, e.g. 1920x1080)",
		ErrInvalidResolution, s, strings.Join(ResolutionNames(), ", "))
}
