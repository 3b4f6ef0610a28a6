package pagedraw

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// faceKey identifies a sized face.
type faceKey struct {
	name    string
	size    float64
	bold    bool
	italic  bool
	measure bool
}

// fontEntry is a parsed font plus its source bytes. Fonts taken from a
// collection have no data of their own.
type fontEntry struct {
	font *opentype.Font
	data []byte
}

// FontCache loads TrueType/OpenType fonts and caches sized faces.
//
// Fonts are looked up by family name in the configured directories. When
// no font matches, the embedded Go fonts are used, so every lookup yields
// a usable face. FontCache is safe for concurrent use.
type FontCache struct {
	mu       sync.RWMutex
	dirs     []string
	fonts    map[string]fontEntry // lowercase name -> font
	faces    map[faceKey]font.Face
	fallback [4]fontEntry // regular, bold, italic, bold italic
	scanned  bool
}

// NewFontCache creates a FontCache that searches the OS font directories
// plus extraDirs.
func NewFontCache(extraDirs ...string) *FontCache {
	return newFontCache(append(systemFontDirs(), extraDirs...))
}

// NewEmbeddedFontCache creates a FontCache that only knows the embedded Go
// fonts and fonts registered with LoadFont or LoadFontData. Its metrics do
// not depend on the host system.
func NewEmbeddedFontCache() *FontCache {
	return newFontCache(nil)
}

func newFontCache(dirs []string) *FontCache {
	fc := &FontCache{
		dirs:  dirs,
		fonts: make(map[string]fontEntry),
		faces: make(map[faceKey]font.Face),
	}
	for i, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		f, err := opentype.Parse(data)
		if err != nil {
			panic(fmt.Sprintf("pagedraw: embedded font %d: %v", i, err))
		}
		fc.fallback[i] = fontEntry{font: f, data: data}
	}
	fc.fonts["go"] = fc.fallback[0]
	fc.fonts["go bold"] = fc.fallback[1]
	fc.fonts["go italic"] = fc.fallback[2]
	fc.fonts["go bold italic"] = fc.fallback[3]
	return fc
}

// Face returns a hinted face for drawing f at the given point size.
func (fc *FontCache) Face(f Font, sizePt float64) font.Face {
	return fc.face(f, sizePt, false)
}

// MeasureFace returns an unhinted face for f. Unhinted advances scale
// linearly with the size, which keeps line breaking independent of the
// output resolution.
func (fc *FontCache) MeasureFace(f Font) font.Face {
	return fc.face(f, f.Size, true)
}

func (fc *FontCache) face(f Font, sizePt float64, measure bool) font.Face {
	bold, italic := f.Style.IsBold(), f.Style.IsItalic()
	key := faceKey{strings.ToLower(f.Family), sizePt, bold, italic, measure}

	fc.mu.RLock()
	face, ok := fc.faces[key]
	fc.mu.RUnlock()
	if ok {
		return face
	}

	hinting := font.HintingFull
	if measure {
		hinting = font.HintingNone
	}
	e := fc.lookup(f.Family, bold, italic)
	face, err := opentype.NewFace(e.font, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: hinting})
	if err != nil {
		Logger().Warn("pagedraw: cannot create face", "family", f.Family, "err", err)
		face, _ = opentype.NewFace(fc.fallback[0].font, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: hinting})
	}

	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face
}

// SFNT returns the parsed font used for f.
func (fc *FontCache) SFNT(f Font) *sfnt.Font {
	return fc.lookup(f.Family, f.Style.IsBold(), f.Style.IsItalic()).font
}

// FontData returns the raw bytes of the font used for f, or nil when the
// font came from a collection.
func (fc *FontCache) FontData(f Font) []byte {
	return fc.lookup(f.Family, f.Style.IsBold(), f.Style.IsItalic()).data
}

// HasFamily reports whether a registered font matches the family name
// without falling back.
func (fc *FontCache) HasFamily(name string) bool {
	fc.ensureScanned()
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	_, ok := fc.findEntry(strings.ToLower(name), false, false)
	return ok
}

var (
	boldSuffixes       = []string{" bold", "bd", "b", "-bold"}
	italicSuffixes     = []string{" italic", "i", " it", "-italic"}
	boldItalicSuffixes = []string{" bold italic", "bi", " bolditalic", "z", "-bolditalic"}
)

// lookup finds the font for a family, trying style variants first and
// falling back to the embedded Go fonts.
func (fc *FontCache) lookup(name string, bold, italic bool) fontEntry {
	fc.ensureScanned()
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	lower := strings.ToLower(name)
	if e, ok := fc.findEntry(lower, bold, italic); ok {
		return e
	}
	if alias, ok := fontAliases[lower]; ok {
		if e, ok := fc.findEntry(alias, bold, italic); ok {
			return e
		}
	}
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	return fc.fallback[i]
}

// findEntry must be called with fc.mu held.
func (fc *FontCache) findEntry(lower string, bold, italic bool) (fontEntry, bool) {
	var suffixes []string
	switch {
	case bold && italic:
		suffixes = boldItalicSuffixes
	case bold:
		suffixes = boldSuffixes
	case italic:
		suffixes = italicSuffixes
	}
	for _, s := range suffixes {
		if e, ok := fc.fonts[lower+s]; ok {
			return e, true
		}
	}
	e, ok := fc.fonts[lower]
	return e, ok
}

// LoadFont loads a TrueType/OpenType file and registers it under name.
// Files larger than maxFontFileSize are rejected.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	e := fontEntry{font: f, data: data}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(name)] = e
	fc.registerByFamilyName(e)
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true
	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		ext := filepath.Ext(lower)
		if ext != ".ttf" && ext != ".otf" && ext != ".ttc" && ext != ".otc" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		base := strings.TrimSuffix(lower, ext)
		if ext == ".ttc" || ext == ".otc" {
			fc.loadCollection(data, base)
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		e := fontEntry{font: f, data: data}
		fc.fonts[base] = e
		fc.registerByFamilyName(e)
	}
}

// loadCollection registers every font of a TTC/OTC file by family name.
// The first font is also registered under the file name.
func (fc *FontCache) loadCollection(data []byte, base string) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return
	}
	for i := range coll.NumFonts() {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		e := fontEntry{font: f}
		if i == 0 {
			fc.fonts[base] = e
		}
		fc.registerByFamilyName(e)
	}
}

// fontAliases maps common family names to metric-compatible or localized
// equivalents.
var fontAliases = map[string]string{
	"helvetica":      "arial",
	"helvetica neue": "arial",
	"times":          "times new roman",
	"courier":        "courier new",
	"sans-serif":     "dejavu sans",
	"serif":          "dejavu serif",
	"monospace":      "dejavu sans mono",
	"宋体":             "simsun",
	"黑体":             "simhei",
	"微软雅黑":           "microsoft yahei",
	"楷体":             "kaiti",
	"仿宋":             "fangsong",
	"等线":             "dengxian",
}

// registerByFamilyName records e under its family and full names.
func (fc *FontCache) registerByFamilyName(e fontEntry) {
	if name, err := e.font.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		if _, taken := fc.fonts[strings.ToLower(name)]; !taken {
			fc.fonts[strings.ToLower(name)] = e
		}
	}
	if name, err := e.font.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		fc.fonts[strings.ToLower(name)] = e
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
