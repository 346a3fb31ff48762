package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the font file extensions we load.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories, relative to the process working directory,
// so fonts are found whether run from the repo root or cmd/explorer.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf"),
// sorted, with forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalize(s string) string {
	s = strings.ToLower(s)
	for _, r := range []string{" ", "-", "_"} {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

// Find returns the path of the font to use from the first base dir that has any. A font
// whose file name contains name (fuzzy) wins; otherwise the first font found. ok is false
// when no font exists, and callers fall back to the built-in font.
func Find(dirs []string, name string) (path string, ok bool) {
	want := normalize(name)
	for _, dir := range dirs {
		found, err := ScanDir(dir)
		if err != nil || len(found) == 0 {
			continue
		}
		if want != "" {
			for _, f := range found {
				if strings.Contains(normalize(filepath.Base(f)), want) {
					return filepath.Join(dir, filepath.FromSlash(f)), true
				}
			}
		}
		return filepath.Join(dir, filepath.FromSlash(found[0])), true
	}
	return "", false
}
