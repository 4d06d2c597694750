package retry

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"google.golang.org/api/googleapi"
)

func TestStorageErrorClassifier_IsTransient_GCSErrors(t *testing.T) {
	classifier := NewStorageErrorClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		// Transient GCS errors
		{
			name:        "throttled (429)",
			err:         &googleapi.Error{Code: http.StatusTooManyRequests, Message: "rate limit exceeded"},
			isTransient: true,
		},
		{
			name:        "backend error (500)",
			err:         &googleapi.Error{Code: http.StatusInternalServerError, Message: "backend error"},
			isTransient: true,
		},
		{
			name:        "bad gateway (502)",
			err:         &googleapi.Error{Code: http.StatusBadGateway, Message: "bad gateway"},
			isTransient: true,
		},
		{
			name:        "service unavailable (503)",
			err:         &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "service unavailable"},
			isTransient: true,
		},
		{
			name:        "gateway timeout (504)",
			err:         &googleapi.Error{Code: http.StatusGatewayTimeout, Message: "gateway timeout"},
			isTransient: true,
		},

		// Fatal GCS errors
		{
			name:        "permission denied (403)",
			err:         &googleapi.Error{Code: http.StatusForbidden, Message: "permission denied"},
			isTransient: false,
		},
		{
			name:        "not found (404)",
			err:         &googleapi.Error{Code: http.StatusNotFound, Message: "object not found"},
			isTransient: false,
		},
		{
			name:        "bad request (400)",
			err:         &googleapi.Error{Code: http.StatusBadRequest, Message: "invalid argument"},
			isTransient: false,
		},

		// Wrapped errors still classify
		{
			name:        "wrapped transient",
			err:         fmt.Errorf("gs://b/x: %w", &googleapi.Error{Code: http.StatusServiceUnavailable}),
			isTransient: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifier.IsTransient(tc.err); got != tc.isTransient {
				t.Errorf("IsTransient() = %v, want %v", got, tc.isTransient)
			}
		})
	}
}

func TestStorageErrorClassifier_IsTransient_AzureErrors(t *testing.T) {
	classifier := NewStorageErrorClassifier()

	tests := []struct {
		name        string
		statusCode  int
		isTransient bool
	}{
		{"server busy (503)", http.StatusServiceUnavailable, true},
		{"throttled (429)", http.StatusTooManyRequests, true},
		{"internal error (500)", http.StatusInternalServerError, true},
		{"operation timed out (408)", http.StatusRequestTimeout, true},
		{"authorization failure (403)", http.StatusForbidden, false},
		{"blob not found (404)", http.StatusNotFound, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := &azcore.ResponseError{StatusCode: tc.statusCode}
			if got := classifier.IsTransient(err); got != tc.isTransient {
				t.Errorf("IsTransient() = %v, want %v", got, tc.isTransient)
			}
		})
	}
}

func TestStorageErrorClassifier_IsTransient_NetworkErrors(t *testing.T) {
	classifier := NewStorageErrorClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		{
			name:        "connection refused",
			err:         &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			isTransient: true,
		},
		{
			name:        "connection reset",
			err:         &net.OpError{Op: "read", Err: syscall.ECONNRESET},
			isTransient: true,
		},
		{
			name:        "network unreachable",
			err:         &net.OpError{Op: "dial", Err: syscall.ENETUNREACH},
			isTransient: true,
		},
		{
			name:        "temporary DNS failure",
			err:         &net.DNSError{Err: "server misbehaving", IsTemporary: true},
			isTransient: true,
		},
		{
			name:        "permanent DNS failure",
			err:         &net.DNSError{Err: "no such host", IsNotFound: true},
			isTransient: true, // matched by message pattern
		},
		{
			name:        "i/o timeout by message",
			err:         errors.New("read tcp 10.0.0.1:443: i/o timeout"),
			isTransient: true,
		},
		{
			name:        "generic error",
			err:         errors.New("malformed path"),
			isTransient: false,
		},
		{
			name:        "nil error",
			err:         nil,
			isTransient: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifier.IsTransient(tc.err); got != tc.isTransient {
				t.Errorf("IsTransient() = %v, want %v", got, tc.isTransient)
			}
		})
	}
}
