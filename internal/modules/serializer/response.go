package serializer

import (
	"net/http"

	"github.com/assetlabel/inventory/internal/pkg/apperr"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Msg     string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Err builds a failure envelope. The error text is exposed only as Error.
func Err(code int, msg string, err error) Response {
	res := Response{Code: code, Msg: msg}
	if err != nil {
		if res.Msg == "" {
			res.Msg = err.Error()
		}
		res.Error = err.Error()
	}
	return res
}

func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "invalid parameters"
	}
	return Err(http.StatusBadRequest, msg, err)
}

func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// FromError classifies err and returns the status and envelope to send.
// Internal causes are not echoed back to the caller.
func FromError(err error) (int, Response) {
	ae := apperr.Classify(err)
	if ae == nil {
		return http.StatusOK, Response{Code: http.StatusOK, Msg: "ok"}
	}
	status := ae.Kind.HTTPStatus()
	res := Response{Code: status, Msg: ae.Message, Error: ae.Kind.String()}
	if len(ae.Fields) > 0 {
		res.Details = ae.Fields
	}
	return status, res
}
