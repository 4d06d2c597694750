package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqops/liribatch/internal/logging"
	"github.com/seqops/liribatch/internal/testinfra"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// startAzureBucket runs Azurite and returns an AzureBucket whose client
// factory ignores the account in the path and talks to the emulator.
func startAzureBucket(t *testing.T) (*AzureBucket, *azblob.Client) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := testinfra.StartAzurite(ctx)
	if err != nil {
		t.Skipf("Docker unavailable: %v", err)
	}
	t.Cleanup(func() { ctr.Terminate(ctx) }) //nolint:errcheck

	cred, err := azblob.NewSharedKeyCredential(testinfra.AzuriteAccount, testinfra.AzuriteKey)
	require.NoError(t, err)
	client, err := azblob.NewClientWithSharedKeyCredential(ctr.ServiceURL, cred, nil)
	require.NoError(t, err)

	bucket := newAzureBucketWithFactory(func(account string) (*azblob.Client, error) {
		return client, nil
	}, logging.NewNullLogger())
	return bucket, client
}

func seedBlobs(t *testing.T, client *azblob.Client, container string, blobs map[string]string) {
	t.Helper()

	ctx := context.Background()
	_, err := client.CreateContainer(ctx, container, nil)
	require.NoError(t, err)
	for name, content := range blobs {
		_, err := client.UploadBuffer(ctx, container, name, []byte(content), nil)
		require.NoError(t, err)
	}
}

func TestAzureBucket_ReadAndList(t *testing.T) {
	bucket, client := startAzureBucket(t)
	seedBlobs(t, client, "cohort", map[string]string{
		"phenopackets/S1.phenopacket.json": `{"subject":{"id":"S1"}}`,
		"vcfs/S1.vcf.gz":                   "vcf1",
		"vcfs/S2.vcf.gz":                   "vcf2",
		"vcfs/S2.vcf.gz.tbi":               "index",
		"vcfs/archive/S3.vcf.gz":           "vcf3",
	})

	ctx := context.Background()
	account := testinfra.AzuriteAccount

	content, err := bucket.Read(ctx, "hail-az://"+account+"/cohort/phenopackets/S1.phenopacket.json")
	require.NoError(t, err)
	assert.Equal(t, `{"subject":{"id":"S1"}}`, content)

	paths, err := bucket.List(ctx, "hail-az://"+account+"/cohort/vcfs/*.vcf.gz")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"hail-az://" + account + "/cohort/vcfs/S1.vcf.gz",
		"hail-az://" + account + "/cohort/vcfs/S2.vcf.gz",
	}, paths)

	// Directory listing is non-recursive: direct children only.
	paths, err = bucket.List(ctx, "hail-az://"+account+"/cohort/vcfs")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"hail-az://" + account + "/cohort/vcfs/S1.vcf.gz",
		"hail-az://" + account + "/cohort/vcfs/S2.vcf.gz",
		"hail-az://" + account + "/cohort/vcfs/S2.vcf.gz.tbi",
	}, paths)

	// Listing a concrete blob returns the blob itself.
	paths, err = bucket.List(ctx, "hail-az://"+account+"/cohort/vcfs/S1.vcf.gz")
	require.NoError(t, err)
	assert.Equal(t, []string{"hail-az://" + account + "/cohort/vcfs/S1.vcf.gz"}, paths)
}

func TestAzureBucket_ReadMissingBlob(t *testing.T) {
	bucket, client := startAzureBucket(t)
	seedBlobs(t, client, "cohort", map[string]string{"present.txt": "x"})

	_, err := bucket.Read(context.Background(), "hail-az://"+testinfra.AzuriteAccount+"/cohort/absent.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, liribatch.ErrPathNotFound))
}

func TestAzureBucket_ListEmptyPrefix(t *testing.T) {
	bucket, client := startAzureBucket(t)
	seedBlobs(t, client, "cohort", map[string]string{"vcfs/S1.vcf.gz": "x"})

	paths, err := bucket.List(context.Background(), "hail-az://"+testinfra.AzuriteAccount+"/cohort/nothing-here")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
