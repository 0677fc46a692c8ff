package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
	FileTypeEPUB FileType = "epub"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseFileType maps a file extension (without the dot, any case) to a
// supported FileType.
func ParseFileType(ext string) (FileType, error) {
	switch strings.ToLower(ext) {
	case "pdf":
		return FileTypePDF, nil
	case "docx":
		return FileTypeDOCX, nil
	case "txt":
		return FileTypeTXT, nil
	case "epub":
		return FileTypeEPUB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ExtractText returns the plain text of an uploaded document, trimmed of
// leading and trailing whitespace. Parser failures wrap the underlying cause.
func ExtractText(data []byte, fileType FileType) (string, error) {
	var (
		text string
		err  error
	)
	switch fileType {
	case FileTypePDF:
		text, err = extractPDF(data)
	case FileTypeDOCX:
		text, err = extractDOCX(data)
	case FileTypeTXT:
		text, err = extractTXT(data)
	case FileTypeEPUB:
		text, err = extractEPUB(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, fileType)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// skip pages with no extractable text
			continue
		}
		if content != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX walks word/document.xml inside the OOXML zip and joins the text
// runs of each <w:p> paragraph with newlines.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	docFile := findZipFile(zr, "word/document.xml")
	if docFile == nil {
		return "", errors.New("open docx: missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer rc.Close()

	var paragraphs []string
	var current strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "t" { // <w:t>
				var run string
				if err := decoder.DecodeElement(&run, &se); err == nil {
					current.WriteString(run)
				}
			}
		case xml.EndElement:
			if se.Name.Local == "p" { // </w:p>
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n"), nil
}

// extractTXT decodes the bytes as UTF-8, dropping undecodable sequences
// instead of failing.
func extractTXT(data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), ""), nil
}

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Items []struct {
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
}

// extractEPUB locates the OPF manifest through META-INF/container.xml and
// strips the markup of every XHTML content item.
func extractEPUB(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}

	containerXML, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	var container epubContainer
	if err := xml.Unmarshal(containerXML, &container); err != nil {
		return "", fmt.Errorf("parse epub container: %w", err)
	}
	if len(container.Rootfiles) == 0 {
		return "", errors.New("parse epub container: no rootfile")
	}

	opfPath := container.Rootfiles[0].FullPath
	opfXML, err := readZipFile(zr, opfPath)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	var pkg epubPackage
	if err := xml.Unmarshal(opfXML, &pkg); err != nil {
		return "", fmt.Errorf("parse epub package: %w", err)
	}

	opfDir := path.Dir(opfPath)
	var sections []string
	for _, item := range pkg.Items {
		if item.MediaType != "application/xhtml+xml" {
			continue
		}
		itemPath := item.Href
		if opfDir != "." {
			itemPath = path.Join(opfDir, item.Href)
		}
		content, err := readZipFile(zr, itemPath)
		if err != nil {
			return "", fmt.Errorf("open epub item %s: %w", item.Href, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
		if err != nil {
			return "", fmt.Errorf("parse epub item %s: %w", item.Href, err)
		}
		if text := strings.TrimSpace(doc.Text()); text != "" {
			sections = append(sections, text)
		}
	}
	return strings.Join(sections, "\n"), nil
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f := findZipFile(zr, name)
	if f == nil {
		return nil, fmt.Errorf("missing %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
