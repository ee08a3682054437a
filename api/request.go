package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
)

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// bodyError maps a read failure to a client error, recognising bodies cut
// off by limitBody.
func bodyError(payload string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewMaxBodySizeExceededError(tooLarge.Limit)
	}
	if errors.Is(err, io.EOF) {
		return errs.NewMalformedPayloadError(payload, errors.New("empty body"))
	}
	return errs.NewInvalidJSONError(err)
}

func decodeJSON(r *http.Request, payload string, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return bodyError(payload, err)
	}
	return nil
}

// isForm reports whether the request carries form fields rather than JSON.
func isForm(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "multipart/form-data" || mediaType == "application/x-www-form-urlencoded"
}

func parseForm(r *http.Request, payload string) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewMaxBodySizeExceededError(tooLarge.Limit)
		}
		return errs.NewMalformedPayloadError(payload, err)
	}
	return nil
}

// formOptional returns nil when the field is absent from the form.
func formOptional(r *http.Request, field string) *string {
	if _, ok := r.Form[field]; !ok {
		return nil
	}
	v := r.FormValue(field)
	return &v
}

// formBool reads a checkbox-style flag. An absent field is nil so updates
// keep the stored value.
func formBool(r *http.Request, field string) (*bool, error) {
	raw := formOptional(r, field)
	if raw == nil {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "on", "yes", "y":
		v := true
		return &v, nil
	case "", "off", "no", "n":
		v := false
		return &v, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		return nil, errs.NewInvalidFieldError(field, "must be a boolean")
	}
	return &v, nil
}

// formUploads opens uploaded files and closes them once the handler is done.
type formUploads struct {
	files []multipart.File
}

func (u *formUploads) get(r *http.Request, field string) (*services.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewBadRequestErrorWithField("could not read upload", field, err.Error())
	}
	if header.Filename == "" {
		file.Close()
		return nil, nil
	}
	u.files = append(u.files, file)
	return &services.Upload{Filename: header.Filename, Size: header.Size, Content: file}, nil
}

func (u *formUploads) close(r *http.Request) {
	for _, f := range u.files {
		f.Close()
	}
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// pathID parses a UUID route parameter. A malformed ID cannot name an
// existing entity, so it is reported as not found.
func pathID(r *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

// requestBaseURL rebuilds the public origin of the request, honouring
// X-Forwarded-Proto from a TLS-terminating proxy.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.SplitN(proto, ",", 2)[0])
	}
	return scheme + "://" + r.Host
}
