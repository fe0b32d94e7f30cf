package filestorage

import "mime/multipart"

// FileStorage abstracts the object storage bucket used for student media.
type FileStorage interface {
	// SaveFile stores an uploaded file and returns its public URL.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)
	// DeleteFile removes a stored file given its public URL or key.
	DeleteFile(fileURL string) error
}
