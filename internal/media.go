package internal

import (
    "fmt"
    "os"
    "path/filepath"
    "strings"
)

// MediaKind classifies a file by its extension.
type MediaKind int

const (
    KindUnsupported MediaKind = iota
    KindImage
    KindVideo
)

func (k MediaKind) String() string {
    switch k {
    case KindImage:
        return "image"
    case KindVideo:
        return "video"
    default:
        return "unsupported"
    }
}

// Extension tables. Matching is always case-insensitive.
var (
    defaultImageExt = []string{".jpg", ".jpeg", ".tiff", ".tif", ".png", ".bmp", ".gif", ".webp", ".heic", ".heif"}
    defaultVideoExt = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm", ".m4v", ".3gp", ".mts", ".m2ts"}

    // Formats whose metadata we can rewrite. Everything else is read-only.
    defaultWritableExt = []string{".jpg", ".jpeg", ".tiff", ".tif"}
)

func hasExt(path string, exts []string) bool {
    ext := strings.ToLower(filepath.Ext(path))
    for _, e := range exts {
        if ext == e {
            return true
        }
    }
    return false
}

// ClassifyKind maps a path onto a MediaKind using the configured extension tables.
func ClassifyKind(path string, cfg *Config) MediaKind {
    if hasExt(path, cfg.ImageExt) {
        return KindImage
    }
    if hasExt(path, cfg.VideoExt) {
        return KindVideo
    }
    return KindUnsupported
}

// CanWriteMetadata reports whether the file's format supports metadata writes.
func CanWriteMetadata(path string, cfg *Config) bool {
    return hasExt(path, cfg.WritableExt)
}

// ScanMediaFiles scans input directory recursively for media files based on extensions
func ScanMediaFiles(inputDir string, cfg *Config) ([]string, error) {
    var files []string
    err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
        if err != nil {
            return err
        }
        if info.IsDir() {
            return nil
        }
        if strings.HasSuffix(info.Name(), cfg.BackupSuffix) {
            return nil
        }
        if ClassifyKind(path, cfg) != KindUnsupported {
            files = append(files, path)
        }
        return nil
    })
    if err != nil {
        return nil, fmt.Errorf("error scanning files: %w", err)
    }
    return files, nil
}
