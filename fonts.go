// Font resolution with an ordered candidate list and embedded fallback.
// Candidates are tried from the project fonts directory first, then as
// literal paths, then from the system font directories.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// systemFontDirs are probed after the project fonts directory when a
// candidate is a bare font file name.
var systemFontDirs = []string{
	"/usr/share/fonts",
	"/usr/share/fonts/truetype",
	"/usr/local/share/fonts",
	"/System/Library/Fonts",
	"/Library/Fonts",
	`C:\Windows\Fonts`,
}

// fontResolver locates usable font faces. It never fails: exhausting all
// candidates falls back to the supplied embedded TTF, and a broken
// embedded font degrades to the fixed-size basicfont face.
type fontResolver struct {
	dir string
}

// face resolves the first loadable candidate at the given pixel size.
// fallbackTTF is an embedded font (e.g. gofont/gobold.TTF) used when no
// candidate resolves. The chosen source is logged for diagnostics only.
func (r *fontResolver) face(candidates []string, fallbackTTF []byte, size float64) font.Face {
	for _, name := range candidates {
		for _, path := range r.candidatePaths(name) {
			f, err := loadFaceFile(path, size)
			if err != nil {
				continue
			}
			fmt.Fprintf(logOut, "Using font %s at size %g\n", path, size)
			return f
		}
	}

	fmt.Fprintf(logOut, "Warning: no preferred font found, using embedded fallback\n")
	parsed, err := opentype.Parse(fallbackTTF)
	if err == nil {
		f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return f
		}
	}

	// Last resort: a bitmap face with a fixed size.
	return basicfont.Face7x13
}

// candidatePaths expands a candidate name into the paths to try, in order.
func (r *fontResolver) candidatePaths(name string) []string {
	paths := make([]string, 0, 2+len(systemFontDirs))
	if r.dir != "" {
		paths = append(paths, filepath.Join(r.dir, name))
	}
	paths = append(paths, name)
	if !filepath.IsAbs(name) {
		for _, dir := range systemFontDirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// loadEmbeddedFace builds a face from an embedded TTF at the given size.
func loadEmbeddedFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// loadFaceFile parses an OpenType/TrueType file into a face at the given size.
func loadFaceFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", path, err)
	}
	return face, nil
}
