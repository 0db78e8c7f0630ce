// Package assets loads image assets for embedding in the report SVG.
//
// Asset failures are never fatal: callers treat an error as the signal to
// render the procedural fallback (compass rose, text company mark).
package assets

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// DataURI reads an image file and returns it as a base64 data URI suitable
// for an SVG <image> href. The content type is sniffed from the bytes, so
// mislabeled extensions still work; non-image content is rejected.
func DataURI(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrCodeAssetLoad, "no asset path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAssetLoad, err, "read asset %s", path)
	}
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeAssetLoad, "asset %s is empty", path)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errors.New(errors.ErrCodeAssetLoad, "asset %s is not an image (%s)", path, mime)
	}

	var sb strings.Builder
	sb.WriteString("data:")
	sb.WriteString(mime)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String(), nil
}
