package handler

import (
	"net/http"

	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/handler/dto"
)

// fetchStatus maps a profile fetch failure kind to an HTTP status. A bad
// username is the caller's fault, everything else is an upstream failure.
func fetchStatus(kind github.ErrorKind) int {
	if kind == github.KindInvalidURL {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// writeFetchError writes a profile fetch failure together with the alert
// text the client shows.
func writeFetchError(w http.ResponseWriter, kind github.ErrorKind) {
	alert := github.AlertFor(kind)
	writeJSON(w, fetchStatus(kind), dto.ErrorResponse{
		Error: alert.Message,
		Code:  kind.Code(),
		Alert: &dto.AlertResponse{
			Title:   alert.Title,
			Message: alert.Message,
		},
	})
}
