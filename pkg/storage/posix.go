package storage

import (
	"fmt"
	"os"
)

// fileSource is a local input file.
type fileSource struct {
	*os.File
	size int64
}

func (f *fileSource) Size() int64 {
	return f.size
}

func openFile(path string) (*fileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("failed to open %s: is a directory", path)
	}
	if err := adviseSequential(file); err != nil {
		logger.Debugf("read-ahead hint for %s not applied: %v", path, err)
	}
	return &fileSource{File: file, size: info.Size()}, nil
}

// fileSink is a local output file.
type fileSink struct {
	*os.File
	path string
}

func createFile(path string) (*fileSink, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &fileSink{File: file, path: path}, nil
}

// Abort closes and removes the partially written file.
func (f *fileSink) Abort() error {
	f.File.Close()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", f.path, err)
	}
	return nil
}
