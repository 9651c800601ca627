package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

func docxAttempts(data []byte, path string) []attempt {
	return []attempt{
		{method: MethodDOCX, run: func(context.Context) (string, error) { return docxText(data) }},
		{method: MethodDOCXConv, run: func(context.Context) (string, error) { return convertPath(path) }},
	}
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML keeps character data and turns paragraph, break and tab ends into whitespace.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(buf.String())
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			case "tab":
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
