package fslib

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"

	"github.com/fpang/photo-clusters/internal/photolib"
)

// imageExts contains supported photo file extensions. These files are
// candidates for EXIF date extraction.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".heif": true,
	".hif":  true, // Apple HEIF (alternate extension)
	".tif":  true,
	".tiff": true,
	".dng":  true, // Adobe Digital Negative
	".arw":  true, // Sony RAW
	".cr2":  true, // Canon RAW
	".nef":  true, // Nikon RAW
	".raf":  true, // Fujifilm RAW
}

// videoExts contains supported video file extensions. Videos carry no EXIF
// block, so their dates come from the filename or mtime.
var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
}

func isImage(ext string) bool {
	return imageExts[strings.ToLower(ext)]
}

func isVideo(ext string) bool {
	return videoExts[strings.ToLower(ext)]
}

func isSupported(ext string) bool {
	return isImage(ext) || isVideo(ext)
}

// datePatterns contains regex patterns for extracting capture times from
// filenames. Patterns are tried in order; first match wins. Timestamped
// patterns come first so second precision is kept when the filename has it.
var datePatterns = []struct {
	regex  *regexp.Regexp
	layout string
}{
	// DJI drone: DJI_20250619224111_0001_D.MP4
	{regexp.MustCompile(`DJI_(\d{14})`), "20060102150405"},

	// Generic timestamp: IMG_20250619_123456.jpg, 20250619_123456.mp4
	{regexp.MustCompile(`(\d{8}_\d{6})`), "20060102_150405"},

	// Sony video: 20250616_C0416.MP4
	{regexp.MustCompile(`^(\d{8})_C\d+`), "20060102"},

	// ISO date: 2025-06-19_photo.jpg
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},

	// Compact date: 20250619_photo.jpg (last resort, less specific)
	{regexp.MustCompile(`(\d{8})`), "20060102"},
}

// photoDate determines the best available capture time for a file.
// Priority:
//  1. EXIF DateTimeOriginal / CreateDate / ModifyDate (for images)
//  2. Date parsed from the filename
//  3. File modification time
func photoDate(path string, info fs.FileInfo) (time.Time, photolib.TimestampSource) {
	if isImage(filepath.Ext(path)) {
		if t, err := exifDate(path); err == nil {
			return t, photolib.SourceEXIF
		}
	}

	if t, ok := filenameDate(filepath.Base(path)); ok {
		return t, photolib.SourceFilename
	}

	return info.ModTime(), photolib.SourceModTime
}

// exifDate extracts the capture time from an image's embedded metadata.
// Falls through DateTimeOriginal, CreateDate and ModifyDate in that order.
func exifDate(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	exifData, err := imagemeta.Decode(file)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to decode EXIF metadata: %w", err)
	}

	switch {
	case !exifData.DateTimeOriginal().IsZero():
		return exifData.DateTimeOriginal(), nil
	case !exifData.CreateDate().IsZero():
		return exifData.CreateDate(), nil
	case !exifData.ModifyDate().IsZero():
		return exifData.ModifyDate(), nil
	}
	return time.Time{}, fmt.Errorf("no date fields in EXIF metadata")
}

// filenameDate attempts to extract a capture time from the filename.
// Returns the parsed time and true on a match, zero time and false otherwise.
func filenameDate(filename string) (time.Time, bool) {
	for _, p := range datePatterns {
		matches := p.regex.FindStringSubmatch(filename)
		if len(matches) >= 2 {
			t, err := time.Parse(p.layout, matches[1])
			if err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
