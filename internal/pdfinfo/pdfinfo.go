// Package pdfinfo inspects fetched PDF payloads. Rendering is out of
// scope for this client; the only fact the session view needs is the
// page count.
package pdfinfo

import (
	"bytes"
	"fmt"

	rpdf "rsc.io/pdf"
)

// PageCount parses a PDF payload held in memory and returns its number
// of pages. The reader may panic on malformed input, so the parse is
// recovered into an error.
func PageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse pdf: %w", err)
	}
	return doc.NumPage(), nil
}
