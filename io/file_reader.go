package io

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrNotOpened        = errors.New("file not opened")
	ErrReadMismatch     = errors.New("read bytes mismatch")
	ErrWrittenMismatch  = errors.New("written bytes mismatch")
	ErrFileDoesNotExist = errors.New("file does not exist")
)

type FileReader struct {
	path   string
	file   *os.File
	opened bool

	exists bool
}

func NewFileReader(path string) *FileReader {

	_, err := os.Stat(path)

	return &FileReader{
		path:   path,
		exists: err == nil,
	}
}

func (f *FileReader) Exists() bool {
	return f.exists
}

// Open opens the file for reading, or for writing from scratch, creating
// the parent directory when needed.
func (f *FileReader) Open(readOnly bool) (topErr error) {

	var perm os.FileMode = 0644

	if readOnly {
		if !f.exists {
			return ErrFileDoesNotExist
		}
		f.file, topErr = os.OpenFile(f.path, os.O_RDONLY, perm)
	} else {
		if dir := filepath.Dir(f.path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f.file, topErr = os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	}

	if topErr == nil {
		f.opened = true
		f.exists = true
	}

	return topErr
}

func (f *FileReader) Close() error {
	if !f.opened {
		return nil
	}

	f.opened = false
	return f.file.Close()
}

func (f *FileReader) Size() (int, error) {
	if !f.opened {
		return 0, ErrNotOpened
	}

	st, err := f.file.Stat()
	if err != nil {
		return 0, err
	}

	return int(st.Size()), nil
}

func (f *FileReader) ReadAt(out []byte, off, length int) (err error) {
	if !f.opened {
		return ErrNotOpened
	}

	var readBytes int
	readBytes, err = f.file.ReadAt(out[:length], int64(off))

	if readBytes != length {
		return ErrReadMismatch
	}

	return nil
}

// ReadAll reads the whole file into a fresh buffer.
func (f *FileReader) ReadAll() ([]byte, error) {

	size, err := f.Size()
	if err != nil {
		return nil, err
	}

	out := make([]byte, size)
	if size == 0 {
		return out, nil
	}

	if err := f.ReadAt(out, 0, size); err != nil {
		return nil, err
	}

	return out, nil
}

func (f *FileReader) WriteAt(in []byte, off int) (err error) {
	if !f.opened {
		return ErrNotOpened
	}

	var writtenBytes int
	writtenBytes, err = f.file.WriteAt(in, int64(off))
	if err != nil {
		return err
	}

	if writtenBytes != len(in) {
		return ErrWrittenMismatch
	}

	return f.file.Sync()
}

// ReadFile is the open/read/close sequence in one call.
func ReadFile(path string) ([]byte, error) {

	fr := NewFileReader(path)
	if err := fr.Open(true); err != nil {
		return nil, err
	}
	defer fr.Close()

	return fr.ReadAll()
}

// WriteFile replaces the file contents with data.
func WriteFile(path string, data []byte) error {

	fr := NewFileReader(path)
	if err := fr.Open(false); err != nil {
		return err
	}
	defer fr.Close()

	return fr.WriteAt(data, 0)
}
