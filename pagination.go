package adminclient

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

const defaultPageSize = 10

// PageBase tells how an endpoint numbers its pages on the wire.
type PageBase int

const (
	ZeroBased PageBase = iota
	OneBased
)

// PageRequest selects a page. Page is always 0-based for callers; the wrapper
// converts it for endpoints that count from 1.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	return p
}

func (p PageRequest) query(base PageBase) url.Values {
	p = p.normalized()
	page := p.Page
	if base == OneBased {
		page++
	}
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(p.Size)},
	}
}

// Pageable is the server's echo of the requested page.
type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Sort describes the ordering of a page.
type Sort struct {
	Sorted   bool `json:"sorted"`
	Empty    bool `json:"empty"`
	Unsorted bool `json:"unsorted"`
}

// Page is a paginated list as returned by the admin API.
type Page[T any] struct {
	Content       []T      `json:"content"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	Pageable      Pageable `json:"pageable"`
	Empty         bool     `json:"empty"`
	Sort          Sort     `json:"sort"`
	Size          int      `json:"size"`
	Number        int      `json:"number"`
}

// ID is an entity identifier. The API sends it as a JSON string or number.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}
