package api

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jrsteele09/truedev-client/client"
)

// File is an image to upload with a multipart submission.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadFile reads path and guesses its content type from the extension, then
// from the content.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[api LoadFile] %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &File{Name: filepath.Base(path), ContentType: contentType, Data: data}, nil
}

// ImageChange says what an article edit does with the current image.
type ImageChange struct {
	Remove  bool
	Replace *File
}

var (
	ImageKeep   = ImageChange{}
	ImageRemove = ImageChange{Remove: true}
)

func ImageReplace(f *File) ImageChange {
	return ImageChange{Replace: f}
}

func multipartWith(partName string, value any, file *File) *client.Multipart {
	m := client.NewMultipart().AddJSON(partName, value)
	if file != nil {
		m.AddFile(partProfileImage, file.Name, file.ContentType, file.Data)
	}
	return m
}
