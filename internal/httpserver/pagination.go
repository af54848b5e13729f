package httpserver

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/pagination"
)

// Paginator reads ?page= and ?size= and builds the list envelope.
type Paginator struct {
	DefaultSize int
}

type pageRequest struct {
	Page   int
	Offset int
	Limit  int
}

func (p Paginator) parse(c echo.Context) (pageRequest, error) {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return pageRequest{}, echo.NewHTTPError(http.StatusNotFound, detailInvalidPage)
		}
		page = v
	}

	def := p.DefaultSize
	if def < 1 {
		def = pagination.DefaultPageSize
	}
	size := pagination.ParseIntDefault(c.QueryParam("size"), def)

	offset, limit := pagination.Calculate(page, size)
	return pageRequest{Page: page, Offset: offset, Limit: limit}, nil
}

// build wraps results in the envelope. Any page past the last one except
// the first is reported as 404.
func build[T any](c echo.Context, pr pageRequest, total int64, results []T) (transport.Page[T], error) {
	pages := pagination.TotalPages(total, pr.Limit)
	if pr.Page > 1 && int64(pr.Page) > pages {
		return transport.Page[T]{}, echo.NewHTTPError(http.StatusNotFound, detailInvalidPage)
	}

	out := transport.Page[T]{Count: total, Results: results}
	if int64(pr.Page) < pages {
		out.Next = pageURL(c, pr.Page+1)
	}
	if pr.Page > 1 {
		out.Previous = pageURL(c, pr.Page-1)
	}
	return out, nil
}

// pageURL rebuilds the request URL pointing at page. The first page drops
// the page parameter.
func pageURL(c echo.Context, page int) *string {
	req := c.Request()
	q := req.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: q.Encode(),
	}
	s := u.String()
	return &s
}
