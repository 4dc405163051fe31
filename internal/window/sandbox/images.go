package sandbox

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
)

// ImageResolver reports the pixel size of the image at src. An error makes
// the script-side Image fire onerror instead of onload.
type ImageResolver func(src string) (width, height int, err error)

// DataURLResolver decodes base64 data: URLs.
func DataURLResolver(src string) (int, int, error) {
	if !strings.HasPrefix(src, "data:") {
		return 0, 0, fmt.Errorf("unsupported image source %q", src)
	}
	meta, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return 0, 0, fmt.Errorf("malformed data url")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return 0, 0, fmt.Errorf("decode data url: %w", err)
		}
		data = raw
	} else {
		text, err := url.PathUnescape(payload)
		if err != nil {
			return 0, 0, fmt.Errorf("decode data url: %w", err)
		}
		data = []byte(text)
	}
	return decodeSize(data)
}

// BytesResolver resolves src through lookup, falling back to data: URLs.
func BytesResolver(lookup func(src string) ([]byte, bool)) ImageResolver {
	return func(src string) (int, int, error) {
		if strings.HasPrefix(src, "data:") {
			return DataURLResolver(src)
		}
		data, ok := lookup(src)
		if !ok {
			return 0, 0, fmt.Errorf("image not found: %s", src)
		}
		return decodeSize(data)
	}
}

func decodeSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
