package service

import (
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newObjectID() primitive.ObjectID {
	return primitive.NewObjectID()
}

type mockFileStore struct {
	saved   []string
	deleted []string
	failing bool
}

func (m *mockFileStore) SaveStream(category, filename string, r io.Reader) (string, error) {
	if m.failing {
		return "", io.ErrClosedPipe
	}
	path := "/uploads/" + category + "/" + filename
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *mockFileStore) Delete(publicPath string) error {
	m.deleted = append(m.deleted, publicPath)
	return nil
}

func testUpload(name string) *Upload {
	return &Upload{Filename: name, Size: 128, Reader: strings.NewReader("fake image bytes")}
}
