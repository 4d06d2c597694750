package retry

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"google.golang.org/api/googleapi"
)

// StorageErrorClassifier implements ErrorClassifier for cloud storage errors.
// Both the GCS and Azure Blob SDKs surface service errors with an HTTP status
// code; throttling and server-side failures are transient, everything else
// (not found, permission denied, malformed path) is fatal.
type StorageErrorClassifier struct{}

// NewStorageErrorClassifier creates a new cloud storage error classifier.
func NewStorageErrorClassifier() *StorageErrorClassifier {
	return &StorageErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *StorageErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Azure Blob Storage errors
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return isRetryableStatus(respErr.StatusCode)
	}

	// GCS errors
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}

	// Check for network-level errors
	if c.isNetworkError(err) {
		return true
	}

	// Check for connection errors
	if c.isConnectionError(err) {
		return true
	}

	return false
}

// isRetryableStatus reports whether an HTTP status code indicates a
// transient service condition.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, // 408
		http.StatusTooManyRequests,     // 429 (throttling)
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	}
	return false
}

// isNetworkError checks for network-level errors.
func (c *StorageErrorClassifier) isNetworkError(err error) bool {
	// DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		// Temporary DNS failures are retryable
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	// Network operation errors
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		// Temporary network errors are retryable
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}

		// Check underlying error
		if opErr.Err != nil {
			// Connection refused (endpoint not ready)
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				return true
			}

			// Connection reset by peer
			if errors.Is(opErr.Err, syscall.ECONNRESET) {
				return true
			}

			// Network unreachable
			if errors.Is(opErr.Err, syscall.ENETUNREACH) {
				return true
			}

			// Host unreachable
			if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// isConnectionError checks for connection-related errors by message.
func (c *StorageErrorClassifier) isConnectionError(err error) bool {
	errMsg := err.Error()

	// Check for common connection error messages
	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"unexpected eof",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(strings.ToLower(errMsg), pattern) {
			return true
		}
	}

	return false
}
