package util

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

func Min[A constraints.Ordered](a, b A) A {
	if a < b {
		return a
	}
	return b
}

func Max[A constraints.Ordered](a, b A) A {
	if a > b {
		return a
	}
	return b
}

// WriteFileAtomic writes data to a uniquely named temp file next to the
// target and renames it into place, so a failed write never leaves a
// partial document at the destination.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
