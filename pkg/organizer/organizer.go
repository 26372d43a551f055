// Package organizer plans move operations that group files into
// subdirectories by type category or by date.
package organizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
)

// categories maps each known lowercase extension to its folder name.
// Extensions outside the table fall through to "other".
var categories = map[string]string{}

func init() {
	table := map[string][]string{
		"documents": {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx", ".csv"},
		"images":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".ico", ".webp", ".tiff", ".tif"},
		"videos":    {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpg", ".mpeg"},
		"audio":     {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus"},
		"archives":  {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"},
		"code": {
			".py", ".js", ".java", ".cpp", ".c", ".h", ".cs", ".php", ".rb", ".go", ".rs",
			".ts", ".html", ".css", ".json", ".xml", ".yaml", ".yml", ".sh", ".bat",
		},
	}
	for category, exts := range table {
		for _, ext := range exts {
			categories[ext] = category
		}
	}
}

// Category returns the type folder for an extension (with leading dot).
// Lookup is case-insensitive; unknown extensions map to "other".
func Category(extension string) string {
	if c, ok := categories[strings.ToLower(extension)]; ok {
		return c
	}
	return "other"
}

// Organizer plans organize operations. The by-date variant queries the
// filesystem collaborator for file metadata; nothing here writes to disk.
type Organizer struct {
	fs *fsys.FileSystem
}

// New creates an Organizer backed by the given filesystem.
func New(fs *fsys.FileSystem) *Organizer {
	return &Organizer{fs: fs}
}

// ByType plans one move per file into targetDir/{category}/{filename}.
func (o *Organizer) ByType(files []string, targetDir string) []operation.Operation {
	ops := make([]operation.Operation, 0, len(files))

	for _, file := range files {
		category := Category(filepath.Ext(file))
		dest := filepath.Join(targetDir, category, filepath.Base(file))
		ops = append(ops, operation.New(operation.KindOrganizeType, file, dest))
	}

	return ops
}

// Date folder formats accepted by ByDate. Anything else falls back to
// FormatSlash.
const (
	FormatSlash = "YYYY/MM"
	FormatDash  = "YYYY-MM"
)

// ByDate plans one move per file into a year/month folder under targetDir,
// derived from the file's modification time (creation time when the
// modification time is unavailable). The only failure mode is a metadata
// read error from the collaborator.
func (o *Organizer) ByDate(files []string, targetDir, dateFormat string) ([]operation.Operation, error) {
	ops := make([]operation.Operation, 0, len(files))

	for _, file := range files {
		info, err := o.fs.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("read metadata for %s: %w", file, err)
		}

		fileDate := info.ModTime
		if fileDate.IsZero() {
			fileDate = info.CreatedTime
		}

		var folder string
		switch dateFormat {
		case FormatDash:
			folder = fmt.Sprintf("%04d-%02d", fileDate.Year(), int(fileDate.Month()))
		default:
			folder = filepath.Join(
				fmt.Sprintf("%04d", fileDate.Year()),
				fmt.Sprintf("%02d", int(fileDate.Month())),
			)
		}

		dest := filepath.Join(targetDir, folder, filepath.Base(file))
		ops = append(ops, operation.New(operation.KindOrganizeDate, file, dest))
	}

	return ops, nil
}
