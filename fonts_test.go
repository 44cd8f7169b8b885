package main

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFontResolver_MissingCandidatesFallBack(t *testing.T) {
	silenceLogs(t)
	res := &fontResolver{dir: t.TempDir()}

	face := res.face([]string{"nope.ttf", "also-nope.ttf"}, gobold.TTF, 40)
	if face == nil {
		t.Fatal("resolver must never return nil")
	}
	m := face.Metrics()
	if m.Height <= 0 {
		t.Error("fallback face should have positive height")
	}
}

func TestFontResolver_FindsFontInDir(t *testing.T) {
	silenceLogs(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "Custom-Bold.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	res := &fontResolver{dir: dir}
	face := res.face([]string{"Custom-Bold.ttf"}, gobold.TTF, 30)
	if face == nil {
		t.Fatal("resolver returned nil for a present font")
	}

	// The resolved face must come from the file, not the fallback: an
	// invalid fallback would panic into basicfont otherwise.
	face2 := res.face([]string{"Custom-Bold.ttf"}, []byte("garbage"), 30)
	if face2 == basicfont.Face7x13 {
		t.Error("present candidate should win over fallback")
	}
}

func TestFontResolver_OrderedFirstSuccessWins(t *testing.T) {
	silenceLogs(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "second.ttf"), goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	res := &fontResolver{dir: dir}
	// First candidate missing, second present: must not fall through to
	// the embedded fallback.
	face := res.face([]string{"first.ttf", "second.ttf"}, []byte("garbage"), 30)
	if face == basicfont.Face7x13 {
		t.Error("second candidate should have been resolved")
	}
}

func TestFontResolver_BrokenFallbackDegradesToBasicfont(t *testing.T) {
	silenceLogs(t)
	res := &fontResolver{dir: t.TempDir()}

	face := res.face(nil, []byte("not a font"), 30)
	if face != basicfont.Face7x13 {
		t.Error("broken embedded fallback should degrade to basicfont")
	}
}

func TestLoadFaceFile_Errors(t *testing.T) {
	if _, err := loadFaceFile("/does/not/exist.ttf", 20); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(bad, []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFaceFile(bad, 20); err == nil {
		t.Error("expected error for unparseable font")
	}
}
