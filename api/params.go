package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rynvlabs/cms/pkg/content"
)

func pathID(r *http.Request) (uint, error) {
	v := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", content.ErrInvalid, v)
	}
	return uint(id), nil
}

func pageParams(q url.Values) (page, limit int) {
	page, limit = 1, content.DefaultPageSize
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	return page, limit
}
