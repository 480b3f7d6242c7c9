package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"vincit.fi/collector/api"
)

type requestBody struct {
	contentType string
	data        []byte
}

func jsonBody(value interface{}) (*requestBody, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return &requestBody{contentType: "application/json", data: data}, nil
}

// formBuilder writes a multipart/form-data body. The first error stops
// further writes and is returned from build.
type formBuilder struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newForm() *formBuilder {
	builder := &formBuilder{}
	builder.writer = multipart.NewWriter(&builder.buf)
	return builder
}

func (s *formBuilder) field(name string, value string) *formBuilder {
	if s.err == nil {
		s.err = s.writer.WriteField(name, value)
	}
	return s
}

// tags writes the list as a JSON string. The backend parses list fields of
// multipart bodies from JSON.
func (s *formBuilder) tags(tags []string) *formBuilder {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		s.err = err
		return s
	}
	return s.field("tags", string(data))
}

func (s *formBuilder) file(name string, file *api.FileUpload) *formBuilder {
	if s.err != nil || file == nil {
		return s
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(file.FileName)))
	header.Set("Content-Type", contentType)

	part, err := s.writer.CreatePart(header)
	if err != nil {
		s.err = err
		return s
	}
	_, s.err = part.Write(file.Data)
	return s
}

func (s *formBuilder) build() (*requestBody, error) {
	if s.err != nil {
		return nil, fmt.Errorf("encode form: %w", s.err)
	}
	if err := s.writer.Close(); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return &requestBody{contentType: s.writer.FormDataContentType(), data: s.buf.Bytes()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
