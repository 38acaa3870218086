package cpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bare digits", "52998224725", "52998224725"},
		{"formatted", "529.982.247-25", "52998224725"},
		{"spaces and dashes", " 529 982 247-25 ", "52998224725"},
		{"letters only", "abc", ""},
		{"mixed", "5a2b9c98224725", "52998224725"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid bare", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"another valid", "11144477735", true},
		{"empty", "", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"repdigit", "11111111111", false},
		{"repdigit zeros", "00000000000", false},
		{"bad first check digit", "52998224715", false},
		{"bad second check digit", "52998224724", false},
		{"non numeric", "abcdefghijk", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "529.982.247-25", Format("52998224725"))
	assert.Equal(t, "529.982.247-25", Format("529.982.247-25"))
	assert.Equal(t, "", Format(""))
	assert.Equal(t, "", Format("11111111111"))
	assert.Equal(t, "", Format("123"))
}
