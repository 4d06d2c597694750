// Package testinfra starts throwaway infrastructure for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// AzuriteImage is the Azure Storage emulator used for blob backend tests.
	AzuriteImage = "mcr.microsoft.com/azure-storage/azurite:3.34.0"

	// AzuriteAccount and AzuriteKey are Azurite's well-known development
	// storage credentials.
	AzuriteAccount = "devstoreaccount1"
	AzuriteKey     = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="

	azuriteBlobPort = "10000/tcp"
)

// AzuriteContainer is a running Azurite blob endpoint.
type AzuriteContainer struct {
	testcontainers.Container

	// ServiceURL is the account-scoped blob service URL, e.g.
	// http://localhost:32771/devstoreaccount1.
	ServiceURL string
}

// StartAzurite launches an Azurite container exposing the blob service.
func StartAzurite(ctx context.Context) (*AzuriteContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        AzuriteImage,
		ExposedPorts: []string{azuriteBlobPort},
		Cmd:          []string{"azurite-blob", "--blobHost", "0.0.0.0", "--blobPort", "10000"},
		WaitingFor: wait.ForListeningPort(azuriteBlobPort).
			WithStartupTimeout(60 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start azurite: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get azurite host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, azuriteBlobPort)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get azurite port: %w", err)
	}

	return &AzuriteContainer{
		Container:  ctr,
		ServiceURL: fmt.Sprintf("http://%s:%s/%s", host, port.Port(), AzuriteAccount),
	}, nil
}
