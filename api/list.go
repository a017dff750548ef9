package api

import (
	"net/url"
	"strconv"
)

// Default pagination applied when a list call supplies no options.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListOptions controls pagination and extra query parameters on list
// endpoints. The zero value requests the first page at the default size.
type ListOptions struct {
	Page     int
	PageSize int
	// Extra query parameters passed through to the endpoint unvalidated.
	Params url.Values
}

// Values renders the options as query parameters, applying defaults for
// unset pagination fields.
func (o ListOptions) Values() url.Values {
	values := url.Values{}
	for key, list := range o.Params {
		for _, v := range list {
			values.Add(key, v)
		}
	}

	page := o.Page
	if page <= 0 {
		page = DefaultPage
	}
	size := o.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(size))
	return values
}
