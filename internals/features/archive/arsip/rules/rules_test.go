package rules

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kategoriModel "arsipku_backend/internals/features/archive/kategori/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func baseKategori() *kategoriModel.KategoriModel {
	return &kategoriModel.KategoriModel{
		ID:               1,
		Name:             "Akta Kelahiran",
		MaxFile:          2,
		NoType:           kategoriModel.NoTypeAlphanumeric,
		UniqueConstraint: kategoriModel.UniqueNone,
	}
}

func noDup(DupQuery) (bool, error) { return false, nil }

func assertBadRequest(t *testing.T, err error, contains string) {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "harus *fiber.Error, dapat %T", err)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, contains)
}

func TestValidate_Capacity(t *testing.T) {
	k := baseKategori() // maxFile=2

	// 1 existing + 2 baru = 3 > 2 → tolak
	err := Validate(k, Input{No: "1"}, 1, 2, 0, noDup)
	assertBadRequest(t, err, "Maksimal file untuk kategori Akta Kelahiran adalah 2")

	// 1 existing + 1 baru = pas di limit → lolos
	err = Validate(k, Input{No: "1"}, 1, 1, 0, noDup)
	assert.NoError(t, err)
}

func TestValidate_RequiredFields(t *testing.T) {
	k := baseKategori()
	k.RulesFormNama = true

	err := Validate(k, Input{No: "1"}, 0, 1, 0, noDup)
	assertBadRequest(t, err, "Nama wajib diisi")

	nama := "BUDI"
	err = Validate(k, Input{No: "1", Nama: &nama}, 0, 1, 0, noDup)
	assert.NoError(t, err)

	k.RulesFormTanggal = true
	err = Validate(k, Input{No: "1", Nama: &nama}, 0, 1, 0, noDup)
	assertBadRequest(t, err, "Tanggal wajib diisi")

	tgl := time.Now()
	err = Validate(k, Input{No: "1", Nama: &nama, Tanggal: &tgl}, 0, 1, 0, noDup)
	assert.NoError(t, err)
}

func TestValidate_Prefix(t *testing.T) {
	k := baseKategori()
	k.NoPrefix = strPtr("AK-")

	err := Validate(k, Input{No: "474/2024"}, 0, 1, 0, noDup)
	assertBadRequest(t, err, "prefix: AK-")

	err = Validate(k, Input{No: "AK-474"}, 0, 1, 0, noDup)
	assert.NoError(t, err)
}

func TestValidate_Length(t *testing.T) {
	k := baseKategori()
	k.NoMinLength = intPtr(3)
	k.NoMaxLength = intPtr(6)

	assertBadRequest(t, Validate(k, Input{No: "ab"}, 0, 1, 0, noDup), "minimal 3")
	assertBadRequest(t, Validate(k, Input{No: "abcdefg"}, 0, 1, 0, noDup), "maksimal 6")
	assert.NoError(t, Validate(k, Input{No: "abcd"}, 0, 1, 0, noDup))
}

func TestValidate_CharsetByNoType(t *testing.T) {
	tests := []struct {
		name   string
		noType string
		no     string
		ok     bool
	}{
		{"numeric digits and separators", kategoriModel.NoTypeNumeric, "474/2024-1.2", true},
		{"numeric rejects letters", kategoriModel.NoTypeNumeric, "AK474", false},
		{"alphanumeric letters ok", kategoriModel.NoTypeAlphanumeric, "AK-474/2024", true},
		{"alphanumeric rejects spaces", kategoriModel.NoTypeAlphanumeric, "AK 474", false},
		{"custom skips charset", kategoriModel.NoTypeCustom, "apa saja #!?", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := baseKategori()
			k.NoType = tt.noType
			err := Validate(k, Input{No: tt.no}, 0, 1, 0, noDup)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Regex(t *testing.T) {
	k := baseKategori()
	k.NoRegex = strPtr(`^\d{3}/\d{4}$`)
	k.NoFormat = strPtr("474/2024")

	err := Validate(k, Input{No: "AK-474"}, 0, 1, 0, noDup)
	assertBadRequest(t, err, "Contoh: 474/2024")

	assert.NoError(t, Validate(k, Input{No: "474/2024"}, 0, 1, 0, noDup))
}

func TestValidate_InvalidRegexIsSkipped(t *testing.T) {
	k := baseKategori()
	k.NoType = kategoriModel.NoTypeCustom
	k.NoRegex = strPtr(`([unclosed`)

	// regex rusak → check di-skip, bukan menolak semua nomor
	assert.NoError(t, Validate(k, Input{No: "apapun"}, 0, 1, 0, noDup))
}

func TestValidate_NoOnlyCheckedWhenPresent(t *testing.T) {
	k := baseKategori()
	k.NoPrefix = strPtr("AK-")

	// delta update tanpa no → aturan penomoran tidak jalan
	assert.NoError(t, Validate(k, Input{}, 1, 0, 5, noDup))
}

func TestValidate_UniqueNumberOnly(t *testing.T) {
	k := baseKategori()
	k.UniqueConstraint = kategoriModel.UniqueNo

	var got DupQuery
	dup := func(q DupQuery) (bool, error) {
		got = q
		return true, nil
	}

	err := Validate(k, Input{No: "474"}, 0, 1, 9, dup)
	assertBadRequest(t, err, "Nomor 474 sudah ada")
	assert.Equal(t, uint(1), got.KategoriID)
	assert.Equal(t, "474", got.No)
	assert.Equal(t, uint(9), got.ExcludeID)
	assert.Nil(t, got.Tanggal)
	assert.Empty(t, got.NoFisik)
}

func TestValidate_UniqueNumberAndDate(t *testing.T) {
	k := baseKategori()
	k.UniqueConstraint = kategoriModel.UniqueNoTgl

	tgl := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("duplicate no+tanggal rejected", func(t *testing.T) {
		dup := func(q DupQuery) (bool, error) {
			return q.No == "474" && q.Tanggal != nil && q.Tanggal.Equal(tgl), nil
		}
		err := Validate(k, Input{No: "474", Tanggal: &tgl}, 0, 1, 0, dup)
		assertBadRequest(t, err, "Tanggal tersebut sudah ada")
	})

	t.Run("same no different date accepted", func(t *testing.T) {
		lain := tgl.AddDate(0, 0, 1)
		dup := func(q DupQuery) (bool, error) {
			return q.Tanggal != nil && q.Tanggal.Equal(tgl), nil
		}
		err := Validate(k, Input{No: "474", Tanggal: &lain}, 0, 1, 0, dup)
		assert.NoError(t, err)
	})

	t.Run("missing date skips check", func(t *testing.T) {
		called := false
		dup := func(DupQuery) (bool, error) { called = true; return true, nil }
		err := Validate(k, Input{No: "474"}, 0, 1, 0, dup)
		assert.NoError(t, err)
		assert.False(t, called, "compound key belum lengkap, checker tidak boleh dipanggil")
	})
}

func TestValidate_UniqueNumberAndPhysical(t *testing.T) {
	k := baseKategori()
	k.UniqueConstraint = kategoriModel.UniqueNoFisik

	dup := func(q DupQuery) (bool, error) {
		return q.NoFisik == "RAK-01", nil
	}

	err := Validate(k, Input{No: "474", NoFisik: "RAK-01"}, 0, 1, 0, dup)
	assertBadRequest(t, err, "No Fisik tersebut sudah ada")

	assert.NoError(t, Validate(k, Input{No: "474", NoFisik: "RAK-02"}, 0, 1, 0, dup))

	// noFisik kosong → skip
	assert.NoError(t, Validate(k, Input{No: "474"}, 0, 1, 0, dup))
}

func TestValidate_UniqueNoneNeverCallsChecker(t *testing.T) {
	k := baseKategori()
	called := false
	dup := func(DupQuery) (bool, error) { called = true; return true, nil }

	assert.NoError(t, Validate(k, Input{No: "474"}, 0, 1, 0, dup))
	assert.False(t, called)
}

func TestValidate_OrderCapacityBeforeNumbering(t *testing.T) {
	k := baseKategori()
	k.MaxFile = 1
	k.NoPrefix = strPtr("AK-")

	// dua pelanggaran sekaligus → kapasitas yang dilaporkan duluan
	err := Validate(k, Input{No: "tanpa-prefix"}, 1, 1, 0, noDup)
	assertBadRequest(t, err, "Maksimal file")
}

func TestValidate_NilKategori(t *testing.T) {
	err := Validate(nil, Input{No: "1"}, 0, 1, 0, noDup)
	assertBadRequest(t, err, "kategori tidak ditemukan")
}
