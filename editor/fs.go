package editor

import "os"

// Filesystem is the narrow file contract the session needs: whole-file
// reads and writes of text. Keeping it an interface lets tests run the
// full save/open paths without touching the disk.
type Filesystem interface {
	ReadText(path string) (string, error)
	WriteText(path, content string) error
}

type osFilesystem struct{}

func (osFilesystem) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (osFilesystem) WriteText(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
