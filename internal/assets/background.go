package assets

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LoadBackground reads the image at path and returns it as a data URI for the
// page background.
func LoadBackground(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read background image: %w", err)
	}
	return DataURI(filepath.Ext(path), b), nil
}

// DataURI encodes b as data:image/{ext};base64,...
func DataURI(ext string, b []byte) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	mt := mime.TypeByExtension("." + ext)
	if !strings.HasPrefix(mt, "image/") {
		mt = "image/" + ext
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b)
}
