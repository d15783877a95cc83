package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError is a transport failure: the request never produced an HTTP
// response (refused connection, DNS, timeout).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline rather than a refusal.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// ServerError is a non-2xx response. Detail holds the backend's structured
// message when one was present.
type ServerError struct {
	Method string
	Path   string
	Status int
	Detail string
	Body   string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status=%d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status=%d", e.Method, e.Path, e.Status)
}

func (e *ServerError) NotFound() bool { return e.Status == http.StatusNotFound }

func (e *ServerError) retryable() bool {
	switch e.Status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

type errorBody struct {
	APIErro *struct {
		MensagemDetalhada string `json:"mensagemDetalhada"`
		Mensagem          string `json:"mensagem"`
	} `json:"apierro"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// parseDetail extracts the human message from an error body. The backend's
// own envelope wins; generic message/error/detail keys are a fallback.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.APIErro != nil {
		if msg := strings.TrimSpace(eb.APIErro.MensagemDetalhada); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(eb.APIErro.Mensagem); msg != "" {
			return msg
		}
	}
	for _, msg := range []string{eb.Detail, eb.Message, eb.Error} {
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
	}
	return ""
}

// UserMessage returns the text to show for err. A server-provided detail is
// passed through verbatim; anything else gets the fallback.
func UserMessage(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return fallback + " (tempo de resposta esgotado)"
		}
		return fallback + " (backend indisponível)"
	}
	return fallback
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsServer(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
