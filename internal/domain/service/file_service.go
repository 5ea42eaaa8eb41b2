package service

import (
	"context"
	"io"
)

type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (url string, objectName string, err error)
	DeleteFile(ctx context.Context, objectName string) error
	GenerateSignedURL(ctx context.Context, objectName string) (string, error)
	Close() error
}
