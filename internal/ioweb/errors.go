package ioweb

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
	"github.com/labstack/echo/v4"
)

var tagsRemover = strings.NewReplacer(
	"<em>", "", "</em>", "",
	"<title>", "", "</title>", "",
	"<warning>", "", "</warning>", "",
)

// ImportBusyError is returned when an import is already running.
func ImportBusyError() error {
	return &gn.Error{
		Code: errcode.ImportInProgressError,
		Msg:  "Another import is running, try again later",
		Err:  errors.New("import is already in progress"),
	}
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(code gn.ErrorCode) int {
	switch code {
	case errcode.StoreNotFoundError:
		return http.StatusNotFound
	case errcode.StoreValidationError:
		return http.StatusBadRequest
	case errcode.StoreConflictError, errcode.ImportInProgressError:
		return http.StatusConflict
	case errcode.FetchDownloadError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage renders the first line of a gn.Error message without
// terminal markup.
func userMessage(e *gn.Error) string {
	msg := e.Msg
	if len(e.Vars) > 0 {
		msg = fmt.Sprintf(msg, e.Vars...)
	}
	msg, _, _ = strings.Cut(tagsRemover.Replace(msg), "\n")
	return strings.TrimSpace(msg)
}

// errorHandler writes every error in the error envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	var gnErr *gn.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &gnErr):
		status = httpStatus(gnErr.Code)
		msg = userMessage(gnErr)
	case errors.As(err, &httpErr):
		status = httpErr.Code
		msg = fmt.Sprint(httpErr.Message)
	}

	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, Response{Status: statusError, Message: msg})
	}
	if err != nil {
		slog.Error("Cannot write error response", "error", err)
	}
}
