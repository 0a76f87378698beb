package useragent

import "net/http"

// Status codes the chat API answers with.
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusNoContent           = http.StatusNoContent
	StatusNotModified         = http.StatusNotModified
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusForbidden           = http.StatusForbidden
	StatusNotFound            = http.StatusNotFound
	StatusMethodNotAllowed    = http.StatusMethodNotAllowed
	StatusUnprocessableEntity = http.StatusUnprocessableEntity
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusGatewayUnavailable  = http.StatusBadGateway
)

var codeNames = map[int]string{
	StatusOK:                  "HTTP_OK",
	StatusCreated:             "HTTP_CREATED",
	StatusNoContent:           "HTTP_NO_CONTENT",
	StatusNotModified:         "HTTP_NOT_MODIFIED",
	StatusBadRequest:          "HTTP_BAD_REQUEST",
	StatusUnauthorized:        "HTTP_UNAUTHORIZED",
	StatusForbidden:           "HTTP_FORBIDDEN",
	StatusNotFound:            "HTTP_NOT_FOUND",
	StatusMethodNotAllowed:    "HTTP_METHOD_NOT_ALLOWED",
	StatusUnprocessableEntity: "HTTP_UNPROCESSABLE_ENTITY",
	StatusTooManyRequests:     "HTTP_TOO_MANY_REQUESTS",
	StatusGatewayUnavailable:  "HTTP_GATEWAY_UNAVAILABLE",
}

// CodePrint returns a printable name for an HTTP status code: the exact
// name for codes the chat API uses, otherwise the name of its class.
func CodePrint(code int) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	switch {
	case code >= 100 && code < 200:
		return "1xx_INFO"
	case code >= 200 && code < 300:
		return "2xx_SUCCESS"
	case code >= 300 && code < 400:
		return "3xx_REDIRECTING"
	case code >= 400 && code < 500:
		return "4xx_CLIENT_ERROR"
	case code >= 500 && code < 600:
		return "5xx_SERVER_ERROR"
	default:
		return "UNUSUAL_HTTP_CODE"
	}
}

// ReasonPrint returns the reason phrase for code.
func ReasonPrint(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	switch {
	case code >= 100 && code < 200:
		return "Informational response, the request was received and is being processed"
	case code >= 200 && code < 300:
		return "Success, the request was received, understood and accepted"
	case code >= 300 && code < 400:
		return "Redirection, further action is needed to complete the request"
	case code >= 400 && code < 500:
		return "Client error, the request is malformed or cannot be fulfilled"
	case code >= 500 && code < 600:
		return "Server error, the server failed to fulfil a valid request"
	default:
		return "Unusual HTTP code"
	}
}

// IsSuccess reports whether code is 2xx.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
