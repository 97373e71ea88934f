package configs

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arsipku_backend/internals/helpers/cipher"
)

func TestLoadKeys_ReturnsKeysWithoutGlobals(t *testing.T) {
	aesB64 := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 32))
	hmacB64 := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x43}, 32))
	t.Setenv("AES_KEY", aesB64)
	t.Setenv("HMAC_KEY", hmacB64)

	aesKey, hmacKey := LoadKeys()
	require.Len(t, aesKey, 32)
	require.Len(t, hmacKey, 32)
	assert.Equal(t, bytes.Repeat([]byte{0x42}, 32), aesKey)
	assert.Equal(t, bytes.Repeat([]byte{0x43}, 32), hmacKey)

	// Hasil load harus langsung bisa dipakai membangun cipher service.
	_, err := cipher.NewService(aesKey, hmacKey)
	assert.NoError(t, err)
}

func TestGetEnv_Default(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	assert.Equal(t, "/srv/uploads", GetEnv("UPLOAD_DIR", "./uploads"))
	assert.Equal(t, "./uploads", GetEnv("ENV_YANG_TIDAK_ADA", "./uploads"))
	assert.Equal(t, "", GetEnv("ENV_YANG_TIDAK_ADA"))
}
