package model

import "time"

// Role pengguna. Issuance token & manajemen user di luar scope service ini;
// tabel users hanya dibutuhkan sebagai referensi pemilik arsip + konfirmasi
// password saat hapus kategori.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

type UserModel struct {
	ID        uint       `json:"id" gorm:"column:id;primaryKey"`
	Email     string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Username  string     `json:"username" gorm:"column:username;uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"column:name;not null"`
	Password  string     `json:"-" gorm:"column:password;not null"`
	Role      string     `json:"role" gorm:"column:role;not null;default:OPERATOR"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
