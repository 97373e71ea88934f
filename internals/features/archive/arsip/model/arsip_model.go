package model

import (
	"time"

	"gorm.io/datatypes"

	kategoriModel "arsipku_backend/internals/features/archive/kategori/model"
)

// ArsipModel — satu entri dokumen milik tepat satu kategori.
// Field sensitif `no` disimpan tiga bentuk: mirror plaintext (pencarian ILIKE),
// envelope terenkripsi no_enc (JSON {iv,tag,ct}), dan no_hash deterministik
// untuk equality search. no_enc/no_hash selalu di-regenerate bersama setiap
// kali no berubah, tidak pernah diwariskan basi.
type ArsipModel struct {
	ID         uint                         `json:"id" gorm:"column:id;primaryKey"`
	IDKategori uint                         `json:"id_kategori" gorm:"column:id_kategori;not null;index"`
	Kategori   *kategoriModel.KategoriModel `json:"kategori,omitempty" gorm:"foreignKey:IDKategori"`

	No     string         `json:"no" gorm:"column:no;not null"`
	NoEnc  datatypes.JSON `json:"-" gorm:"column:no_enc"`
	NoHash string         `json:"-" gorm:"column:no_hash;index"`

	Nama    *string    `json:"nama,omitempty" gorm:"column:nama"`
	Tanggal *time.Time `json:"tanggal,omitempty" gorm:"column:tanggal"`

	// Identifier folder fisik (rak/map) tempat dokumen kertasnya disimpan.
	NoFisik string `json:"no_fisik" gorm:"column:no_fisik;not null"`

	CreatedByID uint `json:"created_by_id" gorm:"column:created_by_id;not null;index"`

	IsSync bool       `json:"is_sync" gorm:"column:is_sync;not null;default:false"`
	SyncAt *time.Time `json:"sync_at,omitempty" gorm:"column:sync_at"`

	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`

	ArsipFiles []ArsipFileModel `json:"arsip_files,omitempty" gorm:"foreignKey:IDArsip"`
}

func (ArsipModel) TableName() string {
	return "arsip_semuas"
}

// ArsipFileModel — attachment milik satu arsip. ID sekaligus ordinal urutan
// pembuatan, dipakai sebagai acuan stabil "file yang mana" saat replace.
type ArsipFileModel struct {
	ID           uint       `json:"id" gorm:"column:id;primaryKey"`
	IDArsip      uint       `json:"id_arsip" gorm:"column:id_arsip;not null;index"`
	OriginalName string     `json:"original_name" gorm:"column:original_name;not null"`
	Path         string     `json:"path" gorm:"column:path;not null"`
	UploadByID   uint       `json:"upload_by_id" gorm:"column:upload_by_id;not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`
}

func (ArsipFileModel) TableName() string {
	return "arsip_files"
}
