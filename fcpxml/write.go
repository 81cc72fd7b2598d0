package fcpxml

import (
	"fmt"

	"beatmark/util"
)

// Write encodes the document and persists it in one atomic operation, so a
// failed write never leaves a partial file at the destination.
func Write(d Document, path string) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
