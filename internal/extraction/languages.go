package extraction

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Language tags.
const (
	LanguageTypeScript = "typescript"
	LanguageTSX        = "tsx"
	LanguageJavaScript = "javascript"
	LanguageJSX        = "jsx"
	LanguageVue        = "vue"
)

// FileKind is the recognized kind of a source file.
type FileKind struct {
	Extension string
	Language  string
	// Component marks single-file components, which additionally get the
	// template and options extractors.
	Component bool
}

var supportedKinds = map[string]FileKind{
	".ts":  {Extension: ".ts", Language: LanguageTypeScript},
	".mts": {Extension: ".mts", Language: LanguageTypeScript},
	".cts": {Extension: ".cts", Language: LanguageTypeScript},
	".tsx": {Extension: ".tsx", Language: LanguageTSX},
	".js":  {Extension: ".js", Language: LanguageJavaScript},
	".mjs": {Extension: ".mjs", Language: LanguageJavaScript},
	".cjs": {Extension: ".cjs", Language: LanguageJavaScript},
	".jsx": {Extension: ".jsx", Language: LanguageJSX},
	".vue": {Extension: ".vue", Language: LanguageVue, Component: true},
}

// DetectKind resolves the file kind from the filename extension.
// It fails with ErrUnsupportedKind for anything outside the supported set.
func DetectKind(filename string) (FileKind, error) {
	if strings.TrimSpace(filename) == "" {
		return FileKind{}, fmt.Errorf("%w: filename is required", ErrInvalidArgument)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := supportedKinds[ext]
	if !ok {
		return FileKind{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedKind, ext, strings.Join(SupportedExtensions(), ", "))
	}
	return kind, nil
}

// SupportedExtensions returns the supported extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedKinds))
	for ext := range supportedKinds {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
