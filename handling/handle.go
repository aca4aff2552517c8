package handling

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError logs an internal failure and writes the standard 500 envelope
// carrying the given message key.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("Request failed", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w,
		gecho.WithMessage(msg),
		gecho.WithData(err.Error()),
		gecho.Send(),
	)
}
