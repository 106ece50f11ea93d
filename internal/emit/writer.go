package emit

import (
	"os"
	"path/filepath"

	"github.com/thorn-jmh/errorst"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes emitted files to the output directory, creating it when
// missing.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return errorst.Wrap(err, "creating output directory")
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return errorst.Wrap(err, "writing file %s", file.Filename)
		}
	}

	return nil
}
