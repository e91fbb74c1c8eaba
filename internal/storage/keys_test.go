package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadKey(t *testing.T) {
	key := UploadKey("supplier", "parent-1", "certificate.pdf")

	assert.True(t, strings.HasPrefix(key, "uploads/supplier/parent-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	// Same inputs must still produce distinct keys.
	assert.NotEqual(t, key, UploadKey("supplier", "parent-1", "certificate.pdf"))
}

func TestUploadKeyNoExtension(t *testing.T) {
	key := UploadKey("employee", "p2", "README")

	assert.True(t, strings.HasPrefix(key, "uploads/employee/p2/"))
	assert.False(t, strings.Contains(filepathBase(key), "."))
}

func filepathBase(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
