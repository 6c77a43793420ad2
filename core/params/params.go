package params

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// QueryParams holds common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page/limit/search from the request, clamping to sane bounds.
func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		p.PageSize = v
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	return p
}

// Add appends a parameter to the given url.Values, for building upstream requests.
func (p *QueryParams) Add(values url.Values, key, value string) url.Values {
	values.Add(key, value)
	return values
}

// Encode renders the params as a query string.
func (p *QueryParams) Encode() string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.PageNumber))
	values.Set("limit", strconv.Itoa(p.PageSize))
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	return values.Encode()
}
