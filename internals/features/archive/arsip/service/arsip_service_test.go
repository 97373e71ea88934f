package service

import (
	"bytes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kategoriModel "arsipku_backend/internals/features/archive/kategori/model"
	"arsipku_backend/internals/helpers/cipher"
)

// JPEG magic bytes (SOI + APP0)
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestCipher(t *testing.T) *cipher.Service {
	t.Helper()
	svc, err := cipher.NewService(bytes.Repeat([]byte{0x11}, 32), bytes.Repeat([]byte{0x22}, 32))
	require.NoError(t, err)
	return svc
}

func upload(name string) UploadedFile {
	return UploadedFile{Name: name, Data: []byte("isi " + name)}
}

func TestSplitFileModes(t *testing.T) {
	a, b := upload("a.jpg"), upload("b.jpg")

	t.Run("mode 3: tanpa file", func(t *testing.T) {
		reps, adds := splitFileModes([]uint{5}, nil)
		assert.Empty(t, reps)
		assert.Empty(t, adds)
	})

	t.Run("mode 2: tanpa file_ids semua append", func(t *testing.T) {
		reps, adds := splitFileModes(nil, []UploadedFile{a, b})
		assert.Empty(t, reps)
		assert.Equal(t, []UploadedFile{a, b}, adds)
	})

	t.Run("mode 1: pasangan penuh", func(t *testing.T) {
		reps, adds := splitFileModes([]uint{5, 9}, []UploadedFile{a, b})
		require.Len(t, reps, 2)
		assert.Equal(t, uint(5), reps[0].FileID)
		assert.Equal(t, a, reps[0].NewFile)
		assert.Equal(t, uint(9), reps[1].FileID)
		assert.Equal(t, b, reps[1].NewFile)
		assert.Empty(t, adds)
	})

	t.Run("mode 1.5: file lebih banyak dari id → sisanya append", func(t *testing.T) {
		reps, adds := splitFileModes([]uint{5}, []UploadedFile{a, b})
		require.Len(t, reps, 1)
		assert.Equal(t, uint(5), reps[0].FileID)
		assert.Equal(t, a, reps[0].NewFile)
		assert.Equal(t, []UploadedFile{b}, adds)
	})

	t.Run("id lebih banyak dari file → id sisa diabaikan", func(t *testing.T) {
		reps, adds := splitFileModes([]uint{5, 9, 12}, []UploadedFile{a})
		require.Len(t, reps, 1)
		assert.Equal(t, uint(5), reps[0].FileID)
		assert.Empty(t, adds)
	})
}

func TestEnsureRemainingFile(t *testing.T) {
	err := ensureRemainingFile(1)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "setidaknya harus ada 1 file tersisa")

	assert.Error(t, ensureRemainingFile(0))
	assert.NoError(t, ensureRemainingFile(2))
}

func TestServeContent(t *testing.T) {
	ciph := newTestCipher(t)

	t.Run("jpeg terenkripsi didekripsi", func(t *testing.T) {
		enc, err := ciph.EncryptBuffer(jpegBytes)
		require.NoError(t, err)

		body, contentType := serveContent(ciph, "akta.jpg", enc)
		assert.Equal(t, jpegBytes, body)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("jpeg era sebelum enkripsi → raw apa adanya", func(t *testing.T) {
		body, contentType := serveContent(ciph, "akta-lama.jpeg", jpegBytes)
		assert.Equal(t, jpegBytes, body)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("non-jpeg selalu raw", func(t *testing.T) {
		pdf := []byte("%PDF-1.4 isi dokumen")
		body, contentType := serveContent(ciph, "dokumen.pdf", pdf)
		assert.Equal(t, pdf, body)
		assert.Contains(t, contentType, "application/pdf")
	})
}

func TestEncryptPreset_Gate(t *testing.T) {
	s := &ArsipService{Cipher: newTestCipher(t)}
	f := UploadedFile{Name: "akta.jpg", Data: jpegBytes}

	t.Run("is_encrypt off → nil", func(t *testing.T) {
		k := &kategoriModel.KategoriModel{IsEncrypt: false}
		preset, err := s.encryptPreset(k, f)
		require.NoError(t, err)
		assert.Nil(t, preset)
	})

	t.Run("bukan jpeg → nil walau is_encrypt on", func(t *testing.T) {
		k := &kategoriModel.KategoriModel{IsEncrypt: true}
		preset, err := s.encryptPreset(k, UploadedFile{Name: "x.jpg", Data: []byte("%PDF-1.4")})
		require.NoError(t, err)
		assert.Nil(t, preset)
	})

	t.Run("is_encrypt on + jpeg → framing nonce||tag||ct", func(t *testing.T) {
		k := &kategoriModel.KategoriModel{IsEncrypt: true}
		preset, err := s.encryptPreset(k, f)
		require.NoError(t, err)
		require.NotNil(t, preset)
		assert.Equal(t, 12+16+len(jpegBytes), len(preset))

		dec, err := s.Cipher.DecryptBuffer(preset)
		require.NoError(t, err)
		assert.Equal(t, jpegBytes, dec)
	})
}
