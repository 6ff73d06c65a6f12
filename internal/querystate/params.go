package querystate

import (
	"net/url"
	"strconv"
)

// ParamOffset is derived from page and limit and ignored when decoding.
const ParamOffset = "offset"

// Encode serializes the filter set into shareable parameters.
func Encode(f FilterSet) url.Values {
	values := url.Values{}
	for _, key := range FilterKeys {
		if value := f.Get(key); value != "" {
			values.Set(string(key), value)
		}
	}

	values.Set(string(KeyPage), strconv.Itoa(f.Page))
	values.Set(string(KeyLimit), strconv.Itoa(f.Limit))
	values.Set(ParamOffset, strconv.Itoa(f.Offset()))

	return values
}

// Decode rebuilds a filter set from shareable parameters. Missing or
// malformed pagination falls back to the first page of pageSize; a location
// without a facility is dropped.
func Decode(values url.Values, pageSize int) (FilterSet, error) {
	f := NewFilterSet(pageSize)

	if limit, err := strconv.Atoi(values.Get(string(KeyLimit))); err == nil && limit > 0 {
		f.Limit = limit
	}

	for _, key := range FilterKeys {
		value := values.Get(string(key))
		if value == "" || (key == KeyLocation && f.Facility == "") {
			continue
		}

		next, err := f.With(key, value)
		if err != nil {
			return f, err
		}
		f = next
	}

	if page, err := strconv.Atoi(values.Get(string(KeyPage))); err == nil && page > 0 {
		f.Page = page
	}

	return f, nil
}
