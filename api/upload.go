package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/roboarchive/roboarchive-backend/errs"
)

// Upload limits enforced at the HTTP boundary, before the record
// service runs.
const (
	maxArticleUpload = 50 << 20
	maxRobotUpload   = 100 << 20

	// memory ceiling for multipart parsing; larger parts spill to disk
	multipartMemory = 32 << 20
)

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}

// parseUploadForm caps the request body at limit and parses the
// multipart form. An oversized body maps to 413.
func parseUploadForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(limit)
		}
		return errs.Malformed("multipart form")
	}
	return nil
}

// formFile pulls the optional attachment part; absent is not an error
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, false
	}
	return file, header, true
}

// formString returns the form value, or nil when the field was not
// sent at all (so partial updates can tell "absent" from "empty").
func formString(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func formInt(r *http.Request, name string) (*int, error) {
	s := formString(r, name)
	if s == nil || *s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "expected an integer")
	}
	return &n, nil
}

func formUint(r *http.Request, name string) (*uint, error) {
	s := formString(r, name)
	if s == nil || *s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(*s, 10, 32)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "expected an id")
	}
	id := uint(n)
	return &id, nil
}
