package dto

// CreateKategoriRequest — payload admin saat membuat kategori baru.
// Slug diturunkan dari Name, tidak dikirim client.
type CreateKategoriRequest struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
	FormNo      string  `json:"form_no" validate:"required,min=1"`

	RulesFormNo      *bool `json:"rules_form_no,omitempty"`
	RulesFormNama    bool  `json:"rules_form_nama"`
	RulesFormTanggal bool  `json:"rules_form_tanggal"`

	MaxFile   int  `json:"max_file" validate:"required,min=1,max=30"`
	IsEncrypt bool `json:"is_encrypt"`

	NoType      string  `json:"no_type" validate:"omitempty,oneof=NUMERIC ALPHANUMERIC CUSTOM"`
	NoMinLength *int    `json:"no_min_length,omitempty" validate:"omitempty,min=1"`
	NoMaxLength *int    `json:"no_max_length,omitempty" validate:"omitempty,min=1"`
	NoRegex     *string `json:"no_regex,omitempty"`
	NoPrefix    *string `json:"no_prefix,omitempty"`
	NoFormat    *string `json:"no_format,omitempty"`
	NoMask      *string `json:"no_mask,omitempty"`

	UniqueConstraint string `json:"unique_constraint" validate:"omitempty,oneof=NONE NO NO_TANGGAL NO_NOFISIK"`
}

// UpdateKategoriRequest — partial update, semua field opsional.
type UpdateKategoriRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	FormNo      *string `json:"form_no,omitempty" validate:"omitempty,min=1"`

	RulesFormNo      *bool `json:"rules_form_no,omitempty"`
	RulesFormNama    *bool `json:"rules_form_nama,omitempty"`
	RulesFormTanggal *bool `json:"rules_form_tanggal,omitempty"`

	MaxFile   *int  `json:"max_file,omitempty" validate:"omitempty,min=1,max=30"`
	IsEncrypt *bool `json:"is_encrypt,omitempty"`

	NoType      *string `json:"no_type,omitempty" validate:"omitempty,oneof=NUMERIC ALPHANUMERIC CUSTOM"`
	NoMinLength *int    `json:"no_min_length,omitempty" validate:"omitempty,min=1"`
	NoMaxLength *int    `json:"no_max_length,omitempty" validate:"omitempty,min=1"`
	NoRegex     *string `json:"no_regex,omitempty"`
	NoPrefix    *string `json:"no_prefix,omitempty"`
	NoFormat    *string `json:"no_format,omitempty"`
	NoMask      *string `json:"no_mask,omitempty"`

	UniqueConstraint *string `json:"unique_constraint,omitempty" validate:"omitempty,oneof=NONE NO NO_TANGGAL NO_NOFISIK"`
}

// FindAllKategoriRequest — query list kategori.
type FindAllKategoriRequest struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// DeleteKategoriRequest — hapus kategori butuh konfirmasi password admin.
type DeleteKategoriRequest struct {
	Password string `json:"password" validate:"required"`
}
