package cmd

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":          "R$ 0,00",
		"3.5":        "R$ 3,50",
		"1000":       "R$ 1.000,00",
		"1234567.89": "R$ 1.234.567,89",
		"-42.1":      "-R$ 42,10",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestPagerFooter(t *testing.T) {
	assert.Equal(t, "página 1 de 2 · 24 registro(s) [primeira]", pagerFooter(listview.NewPageInfo(0, 20, 24, 2)))
	assert.Equal(t, "página 2 de 2 · 24 registro(s) [última]", pagerFooter(listview.NewPageInfo(1, 20, 24, 2)))
	assert.Equal(t, "página 0 de 0 · 0 registro(s) [primeira, última]", pagerFooter(listview.NewPageInfo(0, 20, 0, 0)))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	cols := []column[string]{
		{"NOME", func(s string) string { return s }},
	}
	printTable(&buf, cols, []string{"Caneta", "Lápis"})

	out := buf.String()
	assert.Contains(t, out, "NOME")
	assert.Contains(t, out, "----")
	assert.Contains(t, out, "Caneta")
	assert.Contains(t, out, "Lápis")
}
