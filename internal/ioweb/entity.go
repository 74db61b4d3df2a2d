package ioweb

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gnames/ipnidb/internal/iostore"
	"github.com/gnames/ipnidb/pkg/store"
	"github.com/labstack/echo/v4"
)

// registerEntity adds list, get, create and delete routes of one table.
// A non-nil prepare fills derived fields of a row before it is created.
func registerEntity[T any, K comparable](
	e *echo.Echo,
	path string,
	repo store.Repository[T, K],
	parseID func(string) (K, error),
	prepare func(*T),
) {
	e.GET(path, listHandler(repo))
	e.GET(path+"/:id", getHandler(repo, parseID))
	e.POST(path, createHandler(repo, prepare))
	e.DELETE(path+"/:id", deleteHandler(repo, parseID))
}

func stringID(s string) (string, error) {
	if s == "" {
		return "", iostore.ValidationError("Empty id")
	}
	return s, nil
}

func intID(s string) (int, error) {
	res, err := strconv.Atoi(s)
	if err != nil {
		return 0, iostore.ValidationError("Id <em>%s</em> is not a number", s)
	}
	return res, nil
}

// listQuery reads offset and limit. Every other parameter is a column
// filter.
func listQuery(c echo.Context) (store.Query, error) {
	var res store.Query
	var err error
	params := c.QueryParams()
	for k := range params {
		v := params.Get(k)
		switch k {
		case "offset":
			if res.Offset, err = strconv.Atoi(v); err != nil {
				return res, iostore.ValidationError(
					"offset <em>%s</em> is not a number", v,
				)
			}
		case "limit":
			if res.Limit, err = strconv.Atoi(v); err != nil {
				return res, iostore.ValidationError(
					"limit <em>%s</em> is not a number", v,
				)
			}
		default:
			if res.Filters == nil {
				res.Filters = make(map[string]string)
			}
			res.Filters[k] = v
		}
	}
	return res, nil
}

func listHandler[T any, K comparable](repo store.Repository[T, K]) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := listQuery(c)
		if err != nil {
			return err
		}
		page, err := repo.List(c.Request().Context(), q)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, success(page))
	}
}

func getHandler[T any, K comparable](
	repo store.Repository[T, K],
	parseID func(string) (K, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return err
		}
		row, err := repo.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, success(row))
	}
}

func createHandler[T any, K comparable](
	repo store.Repository[T, K],
	prepare func(*T),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ct := strings.ToLower(req.Header.Get(echo.HeaderContentType))
		if !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
			return iostore.ValidationError(
				"Content type should be <em>%s</em>", echo.MIMEApplicationJSON,
			)
		}

		row := new(T)
		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(row); err != nil {
			return iostore.ValidationError("Cannot decode JSON: %s", err.Error())
		}

		if prepare != nil {
			prepare(row)
		}
		if err := repo.Create(req.Context(), row); err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, success(row))
	}
}

func deleteHandler[T any, K comparable](
	repo store.Repository[T, K],
	parseID func(string) (K, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return err
		}
		if err = repo.Delete(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, success(map[string]K{"id": id}))
	}
}
