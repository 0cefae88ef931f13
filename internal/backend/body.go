package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
)

// Body adalah payload mutation: JSON, urlencoded, atau multipart (dengan lampiran).
type Body interface {
	Encode() (io.Reader, string, error)
}

type JSONBody struct {
	Value any
}

func (b JSONBody) Encode() (io.Reader, string, error) {
	raw, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(raw), "application/json", nil
}

type FormBody struct {
	Values url.Values
}

func (b FormBody) Encode() (io.Reader, string, error) {
	return strings.NewReader(b.Values.Encode()), "application/x-www-form-urlencoded", nil
}

// Field menjaga urutan field multipart sama dengan urutan form.
type Field struct {
	Name  string
	Value string
}

type File struct {
	Field    string
	Filename string
	Open     func() (io.ReadCloser, error)
}

type MultipartBody struct {
	Fields []Field
	Files  []File
}

func (b MultipartBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range b.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range b.Files {
		if err := writeFile(w, f); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f File) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("backend: open attachment %s: %w", f.Filename, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Field, f.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

// FileFromHeader meneruskan file upload dari request dashboard ke backend.
func FileFromHeader(field string, fh *multipart.FileHeader) File {
	return File{
		Field:    field,
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
