package dto

import "io"

// ImageFile is an uploaded picture waiting to be pushed to image storage.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type MessageResponse struct {
	Message string `json:"message"`
}
