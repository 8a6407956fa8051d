package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
)

// ExtractText pulls the plain-text layer out of a PDF document, with pages
// concatenated in reading order. It fails when the bytes are not a readable
// PDF or the document carries no selectable text layer (scanned images).
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		sb.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
