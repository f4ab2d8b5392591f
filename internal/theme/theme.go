package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a loaded stylesheet.
type Theme struct {
	Name      string    // Theme name (without .css extension)
	Path      string    // Full path to the CSS file, empty when bundled
	CSS       string    // Stylesheet with imports inlined
	ModTime   time.Time // Last modification time of Path
	IsBundled bool
}

// NewTheme loads a user theme from path with its imports inlined.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewBundledTheme returns the embedded theme called name.
func NewBundledTheme(name string) (*Theme, bool) {
	css, found := GetEmbeddedTheme(name)
	if !found {
		return nil, false
	}
	return &Theme{
		Name:      name,
		CSS:       ProcessImports(css, "", nil),
		IsBundled: true,
	}, true
}

// ProcessImports inlines @import statements in css.
// Relative imports resolve against baseDir and fall back to bundled partials
// and themes. An empty baseDir resolves them from the bundled files only.
// seen guards against import cycles and may be nil.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		// Bundled stylesheets only import bundled files.
		if baseDir == "" && !filepath.IsAbs(importPath) {
			embedded, found := embeddedImport(importPath)
			if !found {
				return "/* import failed: " + importPath + " is not bundled */"
			}
			return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
		}

		data, err := os.ReadFile(fullPath)
		if err != nil {
			if embedded, found := embeddedImport(importPath); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		return "/* imported: " + importPath + " */\n" + ProcessImports(string(data), filepath.Dir(fullPath), seen)
	})
}

func embeddedImport(importPath string) (string, bool) {
	base := filepath.Base(importPath)
	if strings.HasPrefix(base, "_") {
		return GetEmbeddedPartial(base)
	}
	return GetEmbeddedTheme(strings.TrimSuffix(base, ".css"))
}

// Refresh re-reads a user theme and its imports whatever the file's
// modification time, so edits to an imported partial are picked up.
// Returns true if the CSS content changed.
func (t *Theme) Refresh() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}

	return t.read(info)
}

func (t *Theme) read(info os.FileInfo) (bool, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	old := t.CSS
	t.CSS = ProcessImports(string(data), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()

	return old != t.CSS, nil
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
	Overrides bool // A user file shadows the bundled theme of the same name
}

// ListAvailableThemes lists bundled themes followed by user themes in themesDir.
func ListAvailableThemes(themesDir string) ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		path := filepath.Join(themesDir, name)

		if i, ok := index[themeName]; ok {
			themes[i].Path = path
			themes[i].Overrides = true
			continue
		}
		themes = append(themes, ThemeInfo{Name: themeName, Path: path})
	}

	return themes, nil
}
