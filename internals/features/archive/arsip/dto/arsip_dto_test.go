package dto

import (
	"bytes"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"arsipku_backend/internals/features/archive/arsip/model"
	"arsipku_backend/internals/helpers/cipher"
)

func newTestCipher(t *testing.T) *cipher.Service {
	t.Helper()
	svc, err := cipher.NewService(bytes.Repeat([]byte{0x11}, 32), bytes.Repeat([]byte{0x22}, 32))
	require.NoError(t, err)
	return svc
}

func TestCreateArsipRequestNormalize(t *testing.T) {
	nama := "  budi santoso "
	req := CreateArsipRequest{
		No:      " 474/2024 ",
		Nama:    &nama,
		NoFisik: " rak-01 ",
	}
	req.Normalize()

	assert.Equal(t, "474/2024", req.No)
	assert.Equal(t, "RAK-01", req.NoFisik)
	require.NotNil(t, req.Nama)
	assert.Equal(t, "BUDI SANTOSO", *req.Nama)
}

func TestCreateArsipBySlugRequest_RequiredFields(t *testing.T) {
	v := validator.New()

	// no_fisik kosong harus ditolak sama seperti jalur create biasa —
	// subfolder vault butuh identifier fisik yang tidak kosong.
	req := CreateArsipBySlugRequest{No: "474/2024", NoFisik: "   "}
	req.Normalize()
	assert.Error(t, v.Struct(req))

	req = CreateArsipBySlugRequest{NoFisik: "RAK-01"}
	req.Normalize()
	assert.Error(t, v.Struct(req), "no kosong harus ditolak")

	req = CreateArsipBySlugRequest{No: " 474/2024 ", NoFisik: " rak-01 "}
	req.Normalize()
	assert.NoError(t, v.Struct(req))

	out := req.ToCreateRequest()
	assert.Equal(t, "474/2024", out.No)
	assert.Equal(t, "RAK-01", out.NoFisik)
	assert.Zero(t, out.IDKategori, "id kategori diisi service dari slug")
}

func TestUpdateArsipRequestNormalize_EmptyBecomesNil(t *testing.T) {
	empty := "   "
	req := UpdateArsipRequest{No: &empty, Nama: &empty, NoFisik: &empty}
	req.Normalize()

	assert.Nil(t, req.No)
	assert.Nil(t, req.Nama)
	assert.Nil(t, req.NoFisik)
}

func TestParseTanggal(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		raw := "2024-03-01"
		got, err := ParseTanggal(&raw)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("rfc3339", func(t *testing.T) {
		raw := "2024-03-01T10:30:00Z"
		got, err := ParseTanggal(&raw)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("nil and empty pass through", func(t *testing.T) {
		got, err := ParseTanggal(nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		blank := "  "
		got, err = ParseTanggal(&blank)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		raw := "01/03/2024"
		_, err := ParseTanggal(&raw)
		assert.Error(t, err)
	})
}

func TestFromModel_DecryptsEnvelope(t *testing.T) {
	ciph := newTestCipher(t)

	env, err := ciph.EncryptValue("474/2024")
	require.NoError(t, err)
	raw, err := sonic.Marshal(env)
	require.NoError(t, err)

	m := model.ArsipModel{
		ID:      7,
		No:      "474/2024",
		NoEnc:   datatypes.JSON(raw),
		NoHash:  "abc",
		NoFisik: "RAK-01",
		ArsipFiles: []model.ArsipFileModel{
			{ID: 1, OriginalName: "akta.jpg", Path: "arsip/1/2024/RAK-01/x.jpg"},
		},
	}

	resp := FromModel(&m, ciph)
	assert.Equal(t, "474/2024", resp.No)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "akta.jpg", resp.Files[0].OriginalName)
}

func TestFromModel_BadEnvelopeFallsBackToMirror(t *testing.T) {
	ciph := newTestCipher(t)

	m := model.ArsipModel{
		ID:    8,
		No:    "474/2024",
		NoEnc: datatypes.JSON([]byte(`{"iv":"!!","tag":"!!","ct":"!!"}`)),
	}

	resp := FromModel(&m, ciph)
	// Dekripsi gagal tidak boleh menggagalkan request — jatuh ke mirror.
	assert.Equal(t, "474/2024", resp.No)
}

func TestFromModel_WrongKeyFallsBackToMirror(t *testing.T) {
	ciph := newTestCipher(t)
	other, err := cipher.NewService(bytes.Repeat([]byte{0x33}, 32), bytes.Repeat([]byte{0x44}, 32))
	require.NoError(t, err)

	env, err := other.EncryptValue("474/2024")
	require.NoError(t, err)
	raw, err := sonic.Marshal(env)
	require.NoError(t, err)

	m := model.ArsipModel{ID: 9, No: "474/2024", NoEnc: datatypes.JSON(raw)}

	resp := FromModel(&m, ciph)
	assert.Equal(t, "474/2024", resp.No)
}
