package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Akta Kelahiran", "akta-kelahiran"},
		{"trim and collapse spaces", "  Surat   Tanah  ", "surat-tanah"},
		{"diacritics stripped", "Café Résumé", "cafe-resume"},
		{"symbols dropped", "IMB (Izin Mendirikan Bangunan)!", "imb-izin-mendirikan-bangunan"},
		{"hyphens collapsed", "a --- b", "a-b"},
		{"leading trailing hyphens trimmed", "-akta-", "akta"},
		{"empty", "   ", ""},
		{"numbers kept", "Kategori 2024", "kategori-2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}
