package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
)

type storedImage struct {
	contentType string
	data        []byte
}

// imageStore keeps uploaded images in memory under generated names.
type imageStore struct {
	mu     sync.RWMutex
	images map[string]storedImage
}

func newImageStore() *imageStore {
	return &imageStore{images: make(map[string]storedImage)}
}

// save stores the uploaded file and returns the path it is served from.
func (s *imageStore) save(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", truedeverrors.Wrapf(err, "[imageStore save] failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", truedeverrors.Wrapf(err, "[imageStore save] failed to read upload")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	s.mu.Lock()
	s.images[name] = storedImage{contentType: contentType, data: data}
	s.mu.Unlock()
	return strings.Replace(RouteImage, "{file}", name, 1), nil
}

func (s *imageStore) get(name string) (storedImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[name]
	return img, ok
}

func (s *Server) ImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, ok := s.images.get(r.PathValue("file"))
		if !ok {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}
		w.Header().Set("Content-Type", img.contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		_, _ = w.Write(img.data)
	}
}
