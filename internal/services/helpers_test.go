package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2026-03-10", want: "2026-03-10"},
		{input: "10/03/2026", want: "2026-03-10"},
		{input: " 2026-03-10 ", want: "2026-03-10"},
		{input: "03-10-2026", wantErr: true},
		{input: "2026/03/10", wantErr: true},
		{input: "31/02/2026", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseFlexibleDate(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrDateFormat, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{page: 0, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{page: -3, pageSize: -1, wantPage: 1, wantPageSize: 10},
		{page: 2, pageSize: 25, wantPage: 2, wantPageSize: 25},
		{page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
	}
	for _, tc := range cases {
		page, pageSize := clampPagination(tc.page, tc.pageSize)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantPageSize, pageSize)
	}
}
