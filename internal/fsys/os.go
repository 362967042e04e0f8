package fsys

import (
	"errors"
	"io"
	"os"
)

// OS is the host filesystem
type OS struct{}

// ReadDir streams directory names in batches
func (OS) ReadDir(path string, fn func(name string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		names, err := f.Readdirnames(readBatch)
		for _, name := range names {
			if err := fn(name); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
