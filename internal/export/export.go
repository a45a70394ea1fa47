// Package export writes messages to disk, either as a readable text file or
// as the raw RFC 5322 source.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/nhle/tempmail/internal/mailtext"
	"github.com/nhle/tempmail/internal/model"
)

// MaxNameLen caps the length of the file name stem, in characters.
const MaxNameLen = 120

// maxAttempts bounds the collision suffix search.
const maxAttempts = 10000

const textSeparator = "----------------------------------------"

var (
	spacePattern   = regexp.MustCompile(`\s+`)
	hostilePattern = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// Exporter writes files into a single directory, creating it on demand.
type Exporter struct {
	dir string
}

// New returns an Exporter that writes into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the target directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// SaveText writes the message as UTF-8 text and returns the path written.
func (e *Exporter) SaveText(d *model.MessageDetail) (string, error) {
	name := SanitizeFilename(d.Subject, "message_"+d.ID)
	return e.write(name, ".txt", []byte(FormatText(d)))
}

// SaveRaw writes the raw source of message id as an .eml file. The file
// is named after the Subject header of the source.
func (e *Exporter) SaveRaw(id string, raw []byte) (string, error) {
	info, err := ParseSource(raw)
	if err != nil {
		return "", fmt.Errorf("parsing message source: %w", err)
	}
	name := SanitizeFilename(info.Subject, "message_"+id)
	return e.write(name, ".eml", raw)
}

func (e *Exporter) write(name, ext string, content []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	f, path, err := createUnique(e.dir, name, ext)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// createUnique creates dir/name+ext, or dir/name_N+ext for the first free
// N. Creation is exclusive so concurrent saves never share a file.
func createUnique(dir, name, ext string) (*os.File, string, error) {
	for i := 0; i < maxAttempts; i++ {
		stem := name
		if i > 0 {
			stem = name + "_" + strconv.Itoa(i)
		}
		path := filepath.Join(dir, stem+ext)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %q in %s", name+ext, dir)
}

// SanitizeFilename collapses whitespace, replaces characters that are not
// allowed in file names with "_" and truncates to MaxNameLen characters.
// An empty result falls back to fallback.
func SanitizeFilename(name, fallback string) string {
	clean := sanitize(name)
	if clean == "" {
		clean = sanitize(fallback)
	}
	return clean
}

func sanitize(name string) string {
	name = strings.TrimSpace(spacePattern.ReplaceAllString(name, " "))
	name = hostilePattern.ReplaceAllString(name, "_")
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	return name
}

// FormatText renders the header block, a separator and the decoded body.
func FormatText(d *model.MessageDetail) string {
	parts := mailtext.HeaderLines(d)
	parts = append(parts, "", textSeparator, "", mailtext.Body(d), "")
	return strings.Join(parts, "\n")
}

// SourceInfo is what the exporter reads back from a raw message.
type SourceInfo struct {
	Subject     string
	Attachments []string
}

// ParseSource reads the header and walks the parts of a raw message.
func ParseSource(raw []byte) (SourceInfo, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return SourceInfo{}, err
	}
	defer mr.Close()

	var info SourceInfo
	info.Subject, _ = mr.Header.Subject()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The header is enough to name the file.
			break
		}
		if h, ok := part.Header.(*mail.AttachmentHeader); ok {
			filename, _ := h.Filename()
			info.Attachments = append(info.Attachments, filename)
		}
	}
	return info, nil
}
