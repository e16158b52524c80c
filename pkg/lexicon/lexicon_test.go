package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAndContains(t *testing.T) {
	s := New("Cat", " dog ", "")

	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if !s.Contains("cat") {
		t.Error("Contains(cat) = false")
	}
	if !s.Contains("CAT") {
		t.Error("Contains(CAT) = false, lookup should case-fold")
	}
	if !s.Contains("dog") {
		t.Error("Contains(dog) = false, words should be trimmed")
	}
	if s.Contains("bird") {
		t.Error("Contains(bird) = true")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "cat\nDog\n\n  run  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	for _, w := range []string{"cat", "dog", "run"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%s) = false", w)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load() error = nil for a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil for an empty word list")
	}
}

func TestStopwords(t *testing.T) {
	stop := Stopwords()
	if stop.Len() == 0 {
		t.Fatal("Stopwords() is empty")
	}
	for _, w := range []string{"the", "and", "is", "of"} {
		if !stop.Contains(w) {
			t.Errorf("Stopwords() missing %q", w)
		}
	}
	if stop.Contains("cat") {
		t.Error("Stopwords() contains cat")
	}
}
