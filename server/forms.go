package server

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
)

const (
	maxUploadSize = 10 << 20

	partUser    = "user"
	partArticle = "article"
	partImage   = "profileImage"
)

// readMultipart parses a multipart submission and decodes its JSON part
// named part into v. Clients send that part either as a plain field or as a
// file, so both are accepted.
func readMultipart(r *http.Request, part string, v any) (*multipart.Form, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "parse multipart: %v", err)
	}
	form := r.MultipartForm

	var raw []byte
	if values := form.Value[part]; len(values) > 0 {
		raw = []byte(values[0])
	} else if files := form.File[part]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "open %s part: %v", part, err)
		}
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "read %s part: %v", part, err)
		}
	} else {
		return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "missing %s part", part)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "decode %s part: %v", part, err)
	}
	return form, nil
}

// imageUpload reports the image part of form. An image part without a
// filename or content asks for the current image to be removed.
func imageUpload(form *multipart.Form) (upload *multipart.FileHeader, remove bool) {
	if files := form.File[partImage]; len(files) > 0 {
		if files[0].Filename == "" || files[0].Size == 0 {
			return nil, true
		}
		return files[0], false
	}
	if _, ok := form.Value[partImage]; ok {
		return nil, true
	}
	return nil, false
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(v); err != nil {
		return truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "decode body: %v", err)
	}
	return nil
}
