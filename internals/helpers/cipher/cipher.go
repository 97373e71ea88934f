package cipher

import (
	"crypto/aes"
	ccipher "crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

const (
	nonceSize = 12
	tagSize   = 16
)

var (
	ErrEmptyValue = errors.New("nilai yang dienkripsi/di-hash tidak boleh kosong")
	ErrDecrypt    = errors.New("gagal dekripsi data terenkripsi")
	ErrKeySize    = errors.New("kunci harus 32 bytes (AES-256 / HMAC-SHA256)")
)

// Service memegang dua kunci independen: kunci enkripsi nilai/file (AES-256-GCM)
// dan kunci hash pencarian (HMAC-SHA256). Dibuat sekali saat startup lalu
// di-inject ke service lain, bukan global package-level.
type Service struct {
	aead    ccipher.AEAD
	hmacKey []byte
}

func NewService(aesKey, hmacKey []byte) (*Service, error) {
	if len(aesKey) != 32 || len(hmacKey) != 32 {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, err
	}
	aead, err := ccipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{aead: aead, hmacKey: hmacKey}, nil
}

// ValueEnvelope adalah bentuk at-rest untuk field string terenkripsi.
// Disimpan sebagai JSON {iv, tag, ct}, masing-masing base64.
type ValueEnvelope struct {
	IV  string `json:"iv"`
	Tag string `json:"tag"`
	CT  string `json:"ct"`
}

// EncryptValue mengenkripsi string dengan nonce 12-byte baru setiap panggilan.
func (s *Service) EncryptValue(value string) (ValueEnvelope, error) {
	if value == "" {
		return ValueEnvelope{}, ErrEmptyValue
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return ValueEnvelope{}, err
	}

	sealed := s.aead.Seal(nil, nonce, []byte(value), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return ValueEnvelope{
		IV:  base64.StdEncoding.EncodeToString(nonce),
		Tag: base64.StdEncoding.EncodeToString(tag),
		CT:  base64.StdEncoding.EncodeToString(ct),
	}, nil
}

// DecryptValue memverifikasi auth tag; salah kunci / data rusak / tampering
// selalu gagal total, tidak pernah mengembalikan plaintext parsial.
func (s *Service) DecryptValue(env ValueEnvelope) (string, error) {
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil || len(nonce) != nonceSize {
		return "", ErrDecrypt
	}
	tag, err := base64.StdEncoding.DecodeString(env.Tag)
	if err != nil || len(tag) != tagSize {
		return "", ErrDecrypt
	}
	ct, err := base64.StdEncoding.DecodeString(env.CT)
	if err != nil {
		return "", ErrDecrypt
	}

	plain, err := s.aead.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

// HashValue menghasilkan hash deterministik (HMAC-SHA256, hex) untuk
// pencarian equality di atas kolom terenkripsi. Plaintext sama selalu
// menghasilkan hash sama — jangan dipakai untuk kebutuhan unpredictability.
func (s *Service) HashValue(value string) (string, error) {
	if value == "" {
		return "", ErrEmptyValue
	}
	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// EncryptBuffer mengenkripsi bytes mentah dengan framing:
// nonce(12) || tag(16) || ciphertext
func (s *Service) EncryptBuffer(b []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := s.aead.Seal(nil, nonce, b, nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	out := make([]byte, 0, nonceSize+tagSize+len(ct))
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, ct...)
	return out, nil
}

// DecryptBuffer mem-parse framing nonce||tag||ct persis; input pendek,
// framing rusak, atau tag mismatch semuanya gagal dengan ErrDecrypt.
func (s *Service) DecryptBuffer(b []byte) ([]byte, error) {
	if len(b) < nonceSize+tagSize {
		return nil, ErrDecrypt
	}
	nonce := b[:nonceSize]
	tag := b[nonceSize : nonceSize+tagSize]
	ct := b[nonceSize+tagSize:]

	sealed := make([]byte, 0, len(ct)+tagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plain, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}
