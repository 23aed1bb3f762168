// Package document extracts plain text from lecture-note files.
package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lecture-quiz/internal/domain"

	pdf "github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// Format is a recognized document format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// SupportedFormats lists the formats Extract can read.
func SupportedFormats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatPDF, FormatDOCX}
}

// Document is the result of an extraction.
type Document struct {
	Path   string
	Format Format
	Text   string
	// Supported is false when the extension was not recognized; Text then
	// holds a placeholder rather than extracted content.
	Supported bool
}

// FormatFor returns the format for a file name, or false when unsupported.
func FormatFor(name string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch Format(ext) {
	case FormatText, FormatMarkdown, FormatPDF, FormatDOCX:
		return Format(ext), true
	default:
		return Format(ext), false
	}
}

// Extract reads the file at path and returns its text.
// A missing path fails with FILE_NOT_FOUND; an unrecognized extension yields
// a placeholder document instead of an error.
func Extract(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInternalError(fmt.Sprintf("stat %s", path), err)
	}
	if info.IsDir() {
		return nil, domain.NewFileNotFoundError(path, nil)
	}

	if _, ok := FormatFor(path); !ok {
		return placeholder(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("read %s", path), err)
	}
	return ExtractBytes(path, data)
}

// ExtractBytes extracts text from data, choosing the reader by name's extension.
func ExtractBytes(name string, data []byte) (*Document, error) {
	format, ok := FormatFor(name)
	if !ok {
		return placeholder(name), nil
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	default:
		text = string(data)
	}
	if err != nil {
		return nil, domain.NewError(domain.CodeUnsupportedFormat,
			fmt.Sprintf("could not read %s as %s", filepath.Base(name), format), err)
	}

	return &Document{
		Path:      name,
		Format:    format,
		Text:      strings.TrimSpace(text),
		Supported: true,
	}, nil
}

// ExtractAll extracts several files concurrently. Results keep the order of paths.
func ExtractAll(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			doc, err := Extract(gctx, p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// JoinText concatenates the text of supported documents, separated by blank lines.
func JoinText(docs []*Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Supported && d.Text != "" {
			parts = append(parts, d.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func placeholder(name string) *Document {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = "(none)"
	}
	return &Document{
		Path:      name,
		Format:    Format(strings.TrimPrefix(ext, ".")),
		Text:      fmt.Sprintf("unsupported format: %s", ext),
		Supported: false,
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

// extractDOCX gathers the <w:t> runs of word/document.xml, one line per <w:p>.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx container: %w", err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("docx has no word/document.xml")
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("open word/document.xml: %w", err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		out  strings.Builder
		line strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse word/document.xml: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "t":
				var v string
				if err := dec.DecodeElement(&v, &se); err != nil {
					return "", fmt.Errorf("parse text run: %w", err)
				}
				line.WriteString(v)
			case "tab":
				line.WriteString("\t")
			case "br":
				line.WriteString("\n")
			}
		case xml.EndElement:
			if se.Name.Local == "p" {
				if s := strings.TrimSpace(line.String()); s != "" {
					out.WriteString(s)
					out.WriteString("\n")
				}
				line.Reset()
			}
		}
	}
	return out.String(), nil
}
