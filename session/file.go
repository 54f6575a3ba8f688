package session

import (
	"github.com/dot5enko/column-limits/compression"
	"github.com/dot5enko/column-limits/io"
)

func Save(path string, s Snapshot, codec compression.Codec) error {

	data, err := s.Encode(codec)
	if err != nil {
		return err
	}

	return io.WriteFile(path, data)
}

func Load(path string) (Snapshot, error) {

	data, err := io.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}

	return Decode(data)
}

// Exists reports whether a session was saved at path.
func Exists(path string) bool {
	return io.NewFileReader(path).Exists()
}
