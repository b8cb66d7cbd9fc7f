package cv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

type CVParser struct {
	uploadsDir string
}

type ParsedCV struct {
	Filename string
	FilePath string
	FileType string
	FileSize int64
	FullText string
	Skills   []string
}

func NewCVParser(uploadsDir string) *CVParser {
	return &CVParser{
		uploadsDir: uploadsDir,
	}
}

// SupportedType reports whether ParseFile can read files with this name.
func SupportedType(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt":
		return true
	}
	return false
}

// ParseFile stores the upload under the uploads dir, extracts its text
// (PDF/DOCX/TXT) and detects known skills in it.
func (p *CVParser) ParseFile(filename string, reader io.Reader) (*ParsedCV, error) {
	filename = filepath.Base(filename)
	fileType := strings.ToLower(filepath.Ext(filename))
	if !SupportedType(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	filePath := filepath.Join(p.uploadsDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	size, err := io.Copy(file, reader)
	file.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	var text string
	switch fileType {
	case ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	}

	return &ParsedCV{
		Filename: filename,
		FilePath: filePath,
		FileType: fileType,
		FileSize: size,
		FullText: text,
		Skills:   ExtractSkills(text),
	}, nil
}
