package adminclient_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
)

func TestIDUnmarshal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want adminclient.ID
	}{
		{`"abc-1"`, "abc-1"},
		{`42`, "42"},
		{`1.5e3`, "1.5e3"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var v struct {
			ID adminclient.ID `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"id":`+tt.in+`}`), &v), tt.in)
		assert.Equal(t, tt.want, v.ID, tt.in)
	}

	var v struct {
		ID adminclient.ID `json:"id"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &v))
}

func TestPageDecode(t *testing.T) {
	t.Parallel()
	var p adminclient.Page[adminclient.Category]
	require.NoError(t, json.Unmarshal([]byte(`{
		"content": [{"id": 1, "name": "Alimentos"}],
		"totalElements": 31,
		"totalPages": 4,
		"pageable": {"pageNumber": 3, "pageSize": 10},
		"empty": false,
		"size": 10,
		"number": 3
	}`), &p))

	assert.Len(t, p.Content, 1)
	assert.EqualValues(t, 31, p.TotalElements)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, adminclient.Pageable{PageNumber: 3, PageSize: 10}, p.Pageable)
	assert.Equal(t, 3, p.Number)
}
