package validators

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

// maxUploadMemory bounds in-memory multipart buffering; larger parts spill to
// temp files via the stdlib parser.
const maxUploadMemory = 16 << 20

// ParseMultipart parses the request as a multipart form.
func ParseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// FormFile extracts a named file part. Returns (nil, nil) when the part is
// absent; sniffs the content type when the client did not declare one.
func FormFile(r *http.Request, field string) (*upstream.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file part").WithDetails(map[string]any{"field": field})
	}

	contentType := header.Header.Get("Content-Type")
	reader := io.Reader(file)
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 3072)
		n, readErr := io.ReadFull(file, head)
		if readErr != nil && !errors.Is(readErr, io.ErrUnexpectedEOF) && !errors.Is(readErr, io.EOF) {
			file.Close()
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "unreadable file part")
		}
		head = head[:n]
		contentType = mimetype.Detect(head).String()
		reader = io.MultiReader(bytes.NewReader(head), file)
	}

	name := header.Filename
	if name == "" {
		name = field
	}

	return &upstream.FileUpload{
		Name:        name,
		ContentType: contentType,
		Reader:      reader,
	}, nil
}

// RequireFormFile is FormFile with presence enforced.
func RequireFormFile(r *http.Request, field string) (*upstream.FileUpload, error) {
	upload, err := FormFile(r, field)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required").WithDetails(map[string]any{"field": field})
	}
	return upload, nil
}
