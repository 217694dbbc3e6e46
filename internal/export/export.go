// Package export writes rendered lesson plans out as static documents.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/render"
)

// Format is the document format an export produces.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a format other than html or markdown.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "htm", "":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

// Document is a plan to export.
type Document struct {
	// Name is the base file name without extension. Derived from the plan
	// title when empty.
	Name   string
	Format Format
	Plan   *lessonplan.Plan
}

// Sink produces a static document and reports where it went.
type Sink interface {
	Export(ctx context.Context, doc Document) (string, error)
}

// Render returns the document body in its format.
func Render(doc Document) ([]byte, error) {
	if doc.Plan == nil {
		return nil, errors.New("export: document has no plan")
	}
	switch doc.Format {
	case FormatHTML, "":
		return render.HTML(doc.Plan)
	case FormatMarkdown:
		return []byte(render.Markdown(doc.Plan)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, doc.Format)
	}
}

// FileSink writes documents into Dir.
type FileSink struct {
	Dir string

	// Now stamps generated file names. Defaults to time.Now.
	Now func() time.Time
}

var _ Sink = (*FileSink)(nil)

// NewFileSink returns a FileSink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Export renders doc and writes it atomically, returning the file path.
// Unnamed documents get "<title-slug>-<timestamp>" so repeated exports of
// the same plan do not overwrite each other.
func (s *FileSink) Export(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := Render(doc)
	if err != nil {
		return "", err
	}

	name := Slugify(doc.Name)
	if name == "" {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		name = Slugify(doc.Plan.Title)
		if name == "" {
			name = "plan-de-clase"
		}
		name += "-" + now().Format("20060102-150405")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, name+doc.Format.Ext())
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, drops accents and joins words with dashes.
func Slugify(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(strings.TrimSpace(s)),
	)
	if err != nil {
		folded = strings.ToLower(s)
	}
	slug := nonSlugChars.ReplaceAllString(folded, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}
