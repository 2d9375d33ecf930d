package request

import (
	"time"
)

// AddPhotoForm carries the multipart fields accompanying the uploaded file.
type AddPhotoForm struct {
	DisplayName string `form:"display_name" binding:"max=255"`
	Sequence    int    `form:"sequence" binding:"omitempty,gte=0"`
	CapturedAt  string `form:"captured_at" binding:"omitempty"`
	Note        string `form:"note" binding:"max=500"`
}

func (f *AddPhotoForm) ParseCapturedAt() (*time.Time, error) {
	if f.CapturedAt == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, f.CapturedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
