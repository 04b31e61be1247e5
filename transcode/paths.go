// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"os"
	"path/filepath"
	"strings"
)

// DestPath replaces the extension of src with ext (which includes the dot).
func DestPath(src, ext string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ext
}

// Discover lists the files directly inside dir whose extension
// matches ext, ignoring case. The result is sorted by file name.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}
