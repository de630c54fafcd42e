package util

import "testing"

func TestContentHash(t *testing.T) {
	// sha256("abc")
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	if got := ContentHash([]byte("abc")); got != want {
		t.Errorf("ContentHash(abc) = %s, want %s", got, want)
	}
	if got := ContentHashString("abc"); got != want {
		t.Errorf("ContentHashString(abc) = %s, want %s", got, want)
	}
	if got := ShortHash([]byte("abc")); got != want[:16] {
		t.Errorf("ShortHash(abc) = %s, want %s", got, want[:16])
	}
}

func TestContentHashDiffers(t *testing.T) {
	if ContentHashString("draft one") == ContentHashString("draft two") {
		t.Error("Expected different content to hash differently")
	}
}
