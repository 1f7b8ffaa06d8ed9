package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/petcare/internal/server/storage"
	"github.com/go-chi/chi/v5"
)

// FilePart is the form field carrying an optional image.
const FilePart = "file"

// multipartOverhead is room for the JSON part and form boundaries on top of
// the image size limit.
const multipartOverhead = 1 << 20

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return nil
}

// decodeMultipart fills dst from the JSON form field named part and returns
// the optional image. A plain JSON body is accepted as well and never
// carries a file. The returned cleanup func must always be called.
func decodeMultipart(w http.ResponseWriter, r *http.Request, part string, dst any, maxUpload int64) (*storage.File, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return nil, noop, decodeJSON(r, dst)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		return nil, noop, fmt.Errorf("%w: multipart: %v", errBadRequest, err)
	}
	form := r.MultipartForm
	cleanup := func() { _ = form.RemoveAll() }

	data, err := formPart(r, part)
	if err != nil {
		return nil, cleanup, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, cleanup, fmt.Errorf("%w: invalid %s part: %v", errBadRequest, part, err)
	}

	headers := form.File[FilePart]
	if len(headers) == 0 {
		return nil, cleanup, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, cleanup, fmt.Errorf("%w: open file part: %v", errBadRequest, err)
	}
	file := &storage.File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
	return file, func() {
		_ = f.Close()
		cleanup()
	}, nil
}

// formPart reads a JSON part sent either as a plain value or as a file with
// an application/json content type.
func formPart(r *http.Request, part string) ([]byte, error) {
	if v := r.MultipartForm.Value[part]; len(v) > 0 {
		return []byte(v[0]), nil
	}
	if fhs := r.MultipartForm.File[part]; len(fhs) > 0 {
		f, err := fhs[0].Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s part: %v", errBadRequest, part, err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return nil, fmt.Errorf("%w: missing %s part", errBadRequest, part)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}
