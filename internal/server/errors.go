package server

import (
	"net/http"

	"github.com/jonathan/stackmatch/internal/pipeline"
)

// HTTPStatus returns the status code for a failure kind.
func HTTPStatus(kind pipeline.ErrorKind) int {
	switch kind {
	case pipeline.KindInputValidation:
		return http.StatusBadRequest
	case pipeline.KindParseFailure:
		return http.StatusUnprocessableEntity
	case pipeline.KindFetchError, pipeline.KindAIProviderError, pipeline.KindMalformedAIResponse:
		return http.StatusBadGateway
	case pipeline.KindBothProvidersFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
