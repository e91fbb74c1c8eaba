package storage

import (
	"path/filepath"

	"github.com/google/uuid"
)

// UploadKey builds the object key for a newly uploaded file:
// uploads/<module>/<parentID>/<uuid><ext>. The generated name keeps
// concurrent uploads to the same parent from colliding; the original
// filename contributes only its extension.
func UploadKey(module, parentID, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	return filepath.ToSlash(filepath.Join("uploads", module, parentID, genName))
}
