package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

var errUploadTooLarge = errors.New("server: upload too large")

// decodeValues reads the submitted fields named by fm. Multipart bodies are
// streamed: file parts are counted, never buffered, so their real size
// reaches the file rules.
func decodeValues(req *http.Request, fm model.FormModel, maxBytes int64) (validation.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return decodeJSON(req, fm, maxBytes)
	case "multipart/form-data":
		return decodeMultipart(req, fm, maxBytes)
	default:
		if err := req.ParseForm(); err != nil {
			return nil, fmt.Errorf("server: parse form: %w", err)
		}
		return collect(fm, req.PostForm, nil), nil
	}
}

// decodeMultipart walks the parts in order. When the body limit is reached
// inside a file part the file is recorded as larger than the limit and the
// fields read so far are still returned for validation.
func decodeMultipart(req *http.Request, fm model.FormModel, maxBytes int64) (validation.Values, error) {
	req.Body = http.MaxBytesReader(nil, req.Body, maxBytes)
	reader, err := req.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("server: parse multipart: %w", err)
	}

	text := make(map[string][]string)
	files := make(map[string]*validation.File)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if tooLarge(err) {
				return nil, errUploadTooLarge
			}
			return nil, fmt.Errorf("server: parse multipart: %w", err)
		}

		name := part.FormName()
		if part.FileName() == "" {
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				if tooLarge(err) {
					return nil, errUploadTooLarge
				}
				return nil, fmt.Errorf("server: read field %s: %w", name, err)
			}
			text[name] = append(text[name], string(data))
			continue
		}

		size, err := io.Copy(io.Discard, part)
		part.Close()
		file := &validation.File{
			Name:        part.FileName(),
			ContentType: strings.TrimSpace(part.Header.Get("Content-Type")),
			Size:        size,
		}
		truncated := err != nil && tooLarge(err)
		if err != nil && !truncated {
			return nil, fmt.Errorf("server: read upload %s: %w", name, err)
		}
		if truncated {
			file.Size = max(size, req.ContentLength, maxBytes+1)
		}
		if _, seen := files[name]; !seen {
			files[name] = file
		}
		if truncated {
			break
		}
	}
	return collect(fm, text, files), nil
}

func collect(fm model.FormModel, text map[string][]string, files map[string]*validation.File) validation.Values {
	values := make(validation.Values, len(fm.Fields))
	for _, field := range fm.Fields {
		switch {
		case field.Input == model.InputFile:
			values[field.Name] = validation.FileValue(files[field.Name])
		case field.Multiple():
			values[field.Name] = validation.List(text[field.Name]...)
		default:
			if raw := text[field.Name]; len(raw) > 0 {
				values[field.Name] = validation.Text(raw[0])
			}
		}
	}
	return values
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func decodeJSON(req *http.Request, fm model.FormModel, maxBytes int64) (validation.Values, error) {
	var payload map[string]any
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBytes))
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("server: decode json: %w", err)
	}
	values := make(validation.Values, len(fm.Fields))
	for _, field := range fm.Fields {
		raw, ok := payload[field.Name]
		if !ok {
			continue
		}
		value := validation.ValueFromAny(raw)
		if field.Multiple() && value.IsEmpty() {
			value = validation.List()
		}
		values[field.Name] = value
	}
	return values, nil
}
