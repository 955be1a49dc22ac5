package fsx

import "context"

// FileReader reads stored files by path
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter stores files and returns a publicly addressable URL
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// FileSystem combines read/write/delete over a storage backend
type FileSystem interface {
	FileReader
	FileWriter
	DeleteFile(ctx context.Context, path string) error
}
