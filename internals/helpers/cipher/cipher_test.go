package cipher

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	aesKey := bytes.Repeat([]byte{0x11}, 32)
	hmacKey := bytes.Repeat([]byte{0x22}, 32)
	s, err := NewService(aesKey, hmacKey)
	require.NoError(t, err)
	return s
}

func TestNewService_KeySize(t *testing.T) {
	_, err := NewService(make([]byte, 16), make([]byte, 32))
	assert.ErrorIs(t, err, ErrKeySize)

	_, err = NewService(make([]byte, 32), make([]byte, 31))
	assert.ErrorIs(t, err, ErrKeySize)
}

func TestEncryptDecryptValue_RoundTrip(t *testing.T) {
	s := newTestService(t)

	for _, plain := range []string{"474/2024", "AK-0001.2023", "x", "nomor dengan spasi"} {
		env, err := s.EncryptValue(plain)
		require.NoError(t, err, plain)

		got, err := s.DecryptValue(env)
		require.NoError(t, err, plain)
		assert.Equal(t, plain, got)
	}
}

func TestEncryptValue_Empty(t *testing.T) {
	s := newTestService(t)
	_, err := s.EncryptValue("")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestEncryptValue_FreshNonce(t *testing.T) {
	s := newTestService(t)

	a, err := s.EncryptValue("474/2024")
	require.NoError(t, err)
	b, err := s.EncryptValue("474/2024")
	require.NoError(t, err)

	// nonce acak per panggilan → envelope tidak boleh identik
	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.CT, b.CT)
}

func TestDecryptValue_FailsClosed(t *testing.T) {
	s := newTestService(t)

	env, err := s.EncryptValue("474/2024")
	require.NoError(t, err)

	t.Run("tampered ciphertext", func(t *testing.T) {
		ct, _ := base64.StdEncoding.DecodeString(env.CT)
		ct[0] ^= 0xFF
		bad := env
		bad.CT = base64.StdEncoding.EncodeToString(ct)
		_, err := s.DecryptValue(bad)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("tampered tag", func(t *testing.T) {
		tag, _ := base64.StdEncoding.DecodeString(env.Tag)
		tag[3] ^= 0x01
		bad := env
		bad.Tag = base64.StdEncoding.EncodeToString(tag)
		_, err := s.DecryptValue(bad)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := NewService(bytes.Repeat([]byte{0x33}, 32), bytes.Repeat([]byte{0x22}, 32))
		require.NoError(t, err)
		_, err = other.DecryptValue(env)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("garbage base64", func(t *testing.T) {
		bad := env
		bad.IV = "not base64 !!!"
		_, err := s.DecryptValue(bad)
		assert.ErrorIs(t, err, ErrDecrypt)
	})
}

func TestHashValue_Deterministic(t *testing.T) {
	s := newTestService(t)

	h1, err := s.HashValue("474/2024")
	require.NoError(t, err)
	h2, err := s.HashValue("474/2024")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // sha256 hex

	// service baru dengan kunci sama (≈ restart proses) → hash tetap sama
	s2 := newTestService(t)
	h3, err := s2.HashValue("474/2024")
	require.NoError(t, err)
	assert.Equal(t, h1, h3)

	h4, err := s.HashValue("475/2024")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)

	_, err = s.HashValue("")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestEncryptDecryptBuffer_RoundTrip(t *testing.T) {
	s := newTestService(t)

	cases := [][]byte{
		[]byte{},
		[]byte{0xFF},
		[]byte("isi file jpeg pura-pura"),
		bytes.Repeat([]byte{0xAB, 0xCD}, 4096),
	}
	for _, in := range cases {
		enc, err := s.EncryptBuffer(in)
		require.NoError(t, err)
		// framing: nonce(12) + tag(16) + ct
		assert.Equal(t, 12+16+len(in), len(enc))

		dec, err := s.DecryptBuffer(enc)
		require.NoError(t, err)
		assert.Equal(t, in, dec)
	}
}

func TestDecryptBuffer_BadFraming(t *testing.T) {
	s := newTestService(t)

	enc, err := s.EncryptBuffer([]byte("isi file"))
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		_, err := s.DecryptBuffer(enc[:20])
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := s.DecryptBuffer(nil)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("tampered", func(t *testing.T) {
		bad := append([]byte(nil), enc...)
		bad[len(bad)-1] ^= 0x01
		_, err := s.DecryptBuffer(bad)
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("plain bytes never encrypted", func(t *testing.T) {
		_, err := s.DecryptBuffer(bytes.Repeat([]byte{0x00}, 64))
		assert.ErrorIs(t, err, ErrDecrypt)
	})
}
