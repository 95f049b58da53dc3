package handler

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
)

// formUpload extracts a multipart file as a service upload. A missing
// file yields a nil upload; the returned closer must be closed by the
// caller when non-nil.
func formUpload(c *gin.Context, field string) (*service.Upload, io.Closer) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil
	}
	return &service.Upload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	}, file
}

// formSkills reads the skills field either as repeated form values or as
// a single JSON-array string. The second return reports presence.
func formSkills(c *gin.Context) ([]string, bool) {
	values, ok := c.GetPostFormArray("skills")
	if !ok {
		return nil, false
	}
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			return parsed, true
		}
	}
	return values, true
}
