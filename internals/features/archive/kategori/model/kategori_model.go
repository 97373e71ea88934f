package model

import "time"

// Tipe penomoran arsip per kategori.
const (
	NoTypeNumeric      = "NUMERIC"
	NoTypeAlphanumeric = "ALPHANUMERIC"
	NoTypeCustom       = "CUSTOM"
)

// Scope keunikan nomor dalam satu kategori.
const (
	UniqueNone    = "NONE"
	UniqueNo      = "NO"
	UniqueNoTgl   = "NO_TANGGAL"
	UniqueNoFisik = "NO_NOFISIK"
)

// KategoriModel adalah policy object: aturan validasi, penomoran, keunikan,
// dan enkripsi untuk satu kelas arsip. Di-cache agresif oleh KategoriRegistry.
type KategoriModel struct {
	ID          uint    `json:"id" gorm:"column:id;primaryKey"`
	Name        string  `json:"name" gorm:"column:name;not null"`
	Slug        string  `json:"slug" gorm:"column:slug;uniqueIndex;not null"`
	Description *string `json:"description,omitempty" gorm:"column:description"`

	// Label field nomor di form FE, contoh: "Nomor Akta Kelahiran"
	FormNo string `json:"form_no" gorm:"column:form_no;not null"`

	RulesFormNo      bool `json:"rules_form_no" gorm:"column:rules_form_no;not null;default:true"`
	RulesFormNama    bool `json:"rules_form_nama" gorm:"column:rules_form_nama;not null;default:false"`
	RulesFormTanggal bool `json:"rules_form_tanggal" gorm:"column:rules_form_tanggal;not null;default:false"`

	MaxFile   int  `json:"max_file" gorm:"column:max_file;not null;default:1"`
	IsEncrypt bool `json:"is_encrypt" gorm:"column:is_encrypt;not null;default:false"`

	// Aturan penomoran dinamis
	NoType      string  `json:"no_type" gorm:"column:no_type;not null;default:ALPHANUMERIC"`
	NoMinLength *int    `json:"no_min_length,omitempty" gorm:"column:no_min_length"`
	NoMaxLength *int    `json:"no_max_length,omitempty" gorm:"column:no_max_length"`
	NoRegex     *string `json:"no_regex,omitempty" gorm:"column:no_regex"`
	NoPrefix    *string `json:"no_prefix,omitempty" gorm:"column:no_prefix"`
	NoFormat    *string `json:"no_format,omitempty" gorm:"column:no_format"`
	NoMask      *string `json:"no_mask,omitempty" gorm:"column:no_mask"`

	UniqueConstraint string `json:"unique_constraint" gorm:"column:unique_constraint;not null;default:NONE"`

	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`
}

func (KategoriModel) TableName() string {
	return "kategoris"
}
