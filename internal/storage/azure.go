package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// AzureBucket accesses Azure Blob Storage addressed with Hail-style
// hail-az://ACCOUNT/CONTAINER[/BLOB] paths. The credential is negotiated
// once at construction; per-account blob clients are built lazily and
// cached for the duration of the run.
type AzureBucket struct {
	newClient func(account string) (*azblob.Client, error)
	logger    liribatch.Logger

	mu      sync.Mutex
	clients map[string]*azblob.Client
}

// NewAzureBucket creates an Azure-backed Bucket.
//
// The user is expected to be logged in via the Azure CLI; the SDK performs
// requested operations using the identity of the currently logged in user.
// When no CLI credential can be constructed, the default credential chain
// (environment, workload identity, managed identity, ...) is used instead.
func NewAzureBucket(logger liribatch.Logger) (*AzureBucket, error) {
	var cred azcore.TokenCredential
	cred, err := azidentity.NewAzureCLICredential(nil)
	if err != nil {
		logger.Verbose("Azure CLI credential unavailable (%v), falling back to default credential chain", err)
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %v: %w", err, liribatch.ErrAccessDenied)
		}
	}

	return newAzureBucketWithFactory(func(account string) (*azblob.Client, error) {
		return azblob.NewClient(accountServiceURL(account), cred, nil)
	}, logger), nil
}

// newAzureBucketWithFactory wires a custom client factory. Tests use it to
// point the bucket at an Azurite emulator.
func newAzureBucketWithFactory(factory func(account string) (*azblob.Client, error), logger liribatch.Logger) *AzureBucket {
	return &AzureBucket{
		newClient: factory,
		logger:    logger,
		clients:   make(map[string]*azblob.Client),
	}
}

// Read returns the text content of the blob at a hail-az:// path.
func (a *AzureBucket) Read(ctx context.Context, path string) (string, error) {
	account, container, blob, err := parseAzurePath(path)
	if err != nil {
		return "", err
	}
	if blob == "" {
		return "", notFoundError(path)
	}

	client, err := a.clientFor(account)
	if err != nil {
		return "", err
	}

	resp, err := client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return "", classifyAzureError(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// List expands a hail-az:// path, which may contain * wildcards in the blob
// name, into concrete blob paths in lexicographic order. A path naming a
// blob prefix (a "directory") returns its direct children only; listing is
// never recursive.
func (a *AzureBucket) List(ctx context.Context, path string) ([]string, error) {
	account, container, blob, err := parseAzurePath(path)
	if err != nil {
		return nil, err
	}
	if strings.Contains(account, "*") || strings.Contains(container, "*") {
		return nil, fmt.Errorf("wildcards are only supported in the blob name: %s: %w", path, liribatch.ErrInvalidConfig)
	}

	client, err := a.clientFor(account)
	if err != nil {
		return nil, err
	}

	literal, wildcard := splitWildcard(blob)

	prefix := literal
	if !wildcard {
		prefix = blob
	}
	names, err := a.listBlobs(ctx, client, container, prefix, path)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, name := range names {
		if wildcard {
			if matchPattern(blob, name) {
				paths = append(paths, azurePath(account, container, name))
			}
			continue
		}
		if directChild(blob, name) {
			paths = append(paths, azurePath(account, container, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// clientFor returns the cached per-account client, building it on first use.
func (a *AzureBucket) clientFor(account string) (*azblob.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if client, ok := a.clients[account]; ok {
		return client, nil
	}
	client, err := a.newClient(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for account %s: %v: %w", account, err, liribatch.ErrAccessDenied)
	}
	a.clients[account] = client
	return client, nil
}

func (a *AzureBucket) listBlobs(ctx context.Context, client *azblob.Client, container, prefix, path string) ([]string, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = &prefix
	}

	var names []string
	pager := client.NewListBlobsFlatPager(container, opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, classifyAzureError(path, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

// directChild reports whether name is the prefix itself or lies directly
// under it, one level deep.
func directChild(prefix, name string) bool {
	if prefix == "" {
		return !strings.Contains(name, "/")
	}
	rel := strings.TrimPrefix(name, prefix)
	if rel == name {
		return false
	}
	if rel == "" {
		return true
	}
	return rel[0] == '/' && !strings.Contains(rel[1:], "/")
}

// parseAzurePath splits hail-az://ACCOUNT/CONTAINER[/BLOB] into its parts.
func parseAzurePath(path string) (account, container, blob string, err error) {
	trimmed := strings.TrimPrefix(path, "hail-az://")
	if trimmed == path {
		return "", "", "", fmt.Errorf("not a hail-az:// path: %s: %w", path, liribatch.ErrInvalidConfig)
	}
	trimmed = strings.TrimSuffix(trimmed, "/")

	parts := strings.SplitN(trimmed, "/", 3)
	switch {
	case len(parts) >= 3:
		return parts[0], parts[1], parts[2], nil
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return parts[0], parts[1], "", nil
	default:
		return "", "", "", fmt.Errorf(
			"Azure storage path must be of the format 'hail-az://ACCOUNT/CONTAINER[/BLOB]': %s: %w",
			path, liribatch.ErrInvalidConfig)
	}
}

func accountServiceURL(account string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net", account)
}

func azurePath(account, container, name string) string {
	return fmt.Sprintf("hail-az://%s/%s/%s", account, container, name)
}

// classifyAzureError maps Azure SDK errors onto the run's error taxonomy.
func classifyAzureError(path string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return notFoundError(path)
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusForbidden, http.StatusUnauthorized:
			return accessError(path, err)
		case http.StatusNotFound:
			return notFoundError(path)
		}
	}
	return fmt.Errorf("%s: %w", path, err)
}
