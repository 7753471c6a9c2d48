package internal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// Codec decodes and encodes metadata tags for the core. Images are read
// natively with goexif first; videos, odd containers and every write go
// through an exiftool child process, started lazily and reused.
type Codec struct {
	mu sync.Mutex
	et *exiftool.Exiftool
}

func NewCodec() *Codec {
	return &Codec{}
}

// Close shuts down the exiftool process if one was started.
func (c *Codec) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.et != nil {
		c.et.Close()
		c.et = nil
	}
}

// ensureExiftool lazily initializes the exiftool instance.
func (c *Codec) ensureExiftool() (*exiftool.Exiftool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.et != nil {
		return c.et, nil
	}

	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	c.et = et
	return c.et, nil
}

// ReadTags returns the raw tag bag for a file.
func (c *Codec) ReadTags(path string, kind MediaKind) (TagBag, error) {
	if kind == KindImage {
		if tags, err := readNativeExif(path); err == nil {
			return tags, nil
		}
		// goexif handles the common JPEG/TIFF cases; everything else
		// falls through to exiftool.
	}
	return c.readExiftool(path, kind)
}

// Tag names goexif exposes for the three target fields.
var nativeExifFields = map[DateField]exif.FieldName{
	FieldDateTimeOriginal:  exif.DateTimeOriginal,
	FieldDateTimeDigitized: exif.DateTimeDigitized,
	FieldDateCreated:       exif.DateTime,
}

func readNativeExif(path string) (TagBag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	tags := TagBag{}
	for field, name := range nativeExifFields {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			continue
		}
		key := string(field)
		if field == FieldDateCreated {
			key = "DateTime"
		}
		tags[key] = value
	}
	return tags, nil
}

// exiftool key mapping onto the tag bag's names. For images CreateDate
// is DateTimeDigitized and ModifyDate is the plain DateTime tag; for
// videos the creation tag is spelled several ways.
var (
	exiftoolImageKeys = map[string]string{
		"DateTimeOriginal": string(FieldDateTimeOriginal),
		"CreateDate":       string(FieldDateTimeDigitized),
		"ModifyDate":       "DateTime",
	}
	exiftoolVideoKeys = []string{"CreationDate", "CreateDate", "MediaCreateDate", "TrackCreateDate"}
)

func (c *Codec) readExiftool(path string, kind MediaKind) (TagBag, error) {
	et, err := c.ensureExiftool()
	if err != nil {
		return nil, err
	}

	infos := et.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, fmt.Errorf("no metadata for %s", path)
	}
	if infos[0].Err != nil {
		return nil, fmt.Errorf("exiftool read failed for %s: %w", path, infos[0].Err)
	}

	tags := TagBag{}
	for key, bagKey := range exiftoolImageKeys {
		if value, err := infos[0].GetString(key); err == nil {
			tags[bagKey] = value
		}
	}
	if kind == KindVideo {
		for _, key := range exiftoolVideoKeys {
			value, err := infos[0].GetString(key)
			if err != nil {
				continue
			}
			tags["creation_time"] = value
			break
		}
	}
	return tags, nil
}

// WriteDate writes the chosen date into the file's metadata tags.
// The write is atomic from the caller's perspective: tags are written
// onto a temporary copy which then replaces the original, so a failure
// mid-write leaves the original untouched.
func (c *Codec) WriteDate(path string, value time.Time, setOriginal, setCreated bool) error {
	et, err := c.ensureExiftool()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := copyFileAtomic(path, tmp); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	if err := writeTagsWith(et, tmp, value, setOriginal, setCreated); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"file": path,
		"date": FormatExifTime(value),
	}).Debug("wrote metadata date")
	return nil
}

func writeTagsWith(et *exiftool.Exiftool, path string, value time.Time, setOriginal, setCreated bool) error {
	infos := et.ExtractMetadata(path)
	if len(infos) == 0 {
		return fmt.Errorf("no metadata for %s", path)
	}
	if infos[0].Err != nil {
		return fmt.Errorf("exiftool read failed for %s: %w", path, infos[0].Err)
	}

	stamp := FormatExifTime(value)
	if setOriginal {
		infos[0].SetString("DateTimeOriginal", stamp)
		// Digitized mirrors the capture date whenever the original is set.
		infos[0].SetString("CreateDate", stamp)
	}
	if setCreated {
		infos[0].SetString("ModifyDate", stamp)
	}

	et.WriteMetadata(infos)
	if infos[0].Err != nil {
		return fmt.Errorf("exiftool write failed for %s: %w", path, infos[0].Err)
	}
	return nil
}
