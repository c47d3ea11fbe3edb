package http

import (
	"errors"
	"net/http"

	"github.com/scanmark/rostersync/internal/service"
	"github.com/scanmark/rostersync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrRecordsMissing: http.StatusBadRequest,
	service.ErrMalformedCode:  http.StatusBadRequest,
	service.ErrGeneratingCode: http.StatusInternalServerError,

	store.ErrTicketNotFound: http.StatusNotFound,

	store.ErrEncodingSnapshot: http.StatusInternalServerError,
	store.ErrDecodingSnapshot: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
