package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadedFile is one file part of a multipart submission.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Ext returns the lower-cased extension of the original filename, or "".
func (f *UploadedFile) Ext() string {
	return strings.ToLower(filepath.Ext(f.Filename))
}

func (f *UploadedFile) ReadAll() ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func FileFromHeader(fh *multipart.FileHeader) *UploadedFile {
	return &UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FileFromBytes(filename, contentType string, data []byte) *UploadedFile {
	return &UploadedFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Submission is the raw order or cart form: text fields keyed by name and at
// most one file per field name.
type Submission struct {
	Fields map[string]string
	Files  map[string]*UploadedFile
}

// SubmissionFromForm keeps the first value and first file of each field.
func SubmissionFromForm(form *multipart.Form) Submission {
	sub := Submission{
		Fields: map[string]string{},
		Files:  map[string]*UploadedFile{},
	}
	if form == nil {
		return sub
	}
	for key, values := range form.Value {
		if len(values) > 0 {
			sub.Fields[key] = values[0]
		}
	}
	for key, headers := range form.File {
		if len(headers) > 0 {
			sub.Files[key] = FileFromHeader(headers[0])
		}
	}
	return sub
}

// Value returns the trimmed text value of a field.
func (s Submission) Value(key string) string {
	return strings.TrimSpace(s.Fields[key])
}

func (s Submission) File(key string) *UploadedFile {
	if s.Files == nil {
		return nil
	}
	return s.Files[key]
}
