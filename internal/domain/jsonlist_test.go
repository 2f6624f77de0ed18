package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanEncodings(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{"json array text", `["Ana","Dan"]`, StringList{"Ana", "Dan"}},
		{"json array bytes", []byte(`["Ana"]`), StringList{"Ana"}},
		{"double encoded", `"[\"Ana\",\"Dan\"]"`, StringList{"Ana", "Dan"}},
		{"null", nil, StringList{}},
		{"empty", "", StringList{}},
		{"json null", "null", StringList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntListScanEncodings(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want IntList
	}{
		{"numbers", `[101, 205]`, IntList{101, 205}},
		{"numeric strings", `["101", " 205 ", ""]`, IntList{101, 205}},
		{"double encoded", `"[101]"`, IntList{101}},
		{"null", nil, IntList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got IntList
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListScanRejectsGarbage(t *testing.T) {
	var s StringList
	assert.Error(t, s.Scan(`{"a":1}`))
	assert.Error(t, s.Scan(42))

	var i IntList
	assert.Error(t, i.Scan(`["abc"]`))
}

func TestListValueEncodesEmptyAsArray(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = IntList{3, 4}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[3,4]", v)
}
