package utils

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/perezbrayan/tienda/pkg/logger"
	"go.uber.org/zap"
)

// LoggingTransport implements http.RoundTripper and logs outbound requests
// and responses through the global zap logger.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody := ""
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // restore body
		reqBody = string(bodyBytes)
	}

	start := time.Now()

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		if logger.Log != nil {
			logger.Log.Error("outbound request failed",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Duration("duration", duration),
				zap.Error(err))
		}
		return nil, err
	}

	respBody := ""
	if resp.Body != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // restore body
		if len(bodyBytes) > 2000 {
			respBody = string(bodyBytes[:2000]) + "...(truncated)"
		} else {
			respBody = string(bodyBytes)
		}
	}

	if logger.Log != nil {
		logger.Log.Info("outbound request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.String("request_body", reqBody),
			zap.String("status", resp.Status),
			zap.Duration("duration", duration),
			zap.String("response_body", respBody))
	}

	return resp, nil
}

// NewHTTPClient returns an http.Client with request/response logging enabled.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
