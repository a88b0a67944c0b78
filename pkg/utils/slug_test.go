package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlugFromName(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Компьютер", "kompyuter"},
		{"Сетевое оборудование", "setevoe_oborudovanie"},
		{"Ремонт Принтера!", "remont_printera"},
		{"  МФУ HP LaserJet  ", "mfu_hp_laserjet"},
		{"Проектор (актовый зал)", "proektor_aktovyy_zal"},
		{"!!!", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, GenerateSlugFromName(c.name), "вход: %q", c.name)
	}
}

func TestTransliterateKey(t *testing.T) {
	assert.Equal(t, "protsessor", TransliterateKey("Процессор"))
	assert.Equal(t, "ozu", TransliterateKey("ОЗУ"))
	assert.Equal(t, "field", TransliterateKey("???"))
}

func TestDiffPtr(t *testing.T) {
	a, b := uint64(1), uint64(2)

	assert.False(t, DiffPtr[uint64](nil, nil))
	assert.False(t, DiffPtr(&a, &a))
	assert.True(t, DiffPtr(&a, &b))
	assert.True(t, DiffPtr(nil, &a))
	assert.True(t, DiffPtr(&a, nil))
}
