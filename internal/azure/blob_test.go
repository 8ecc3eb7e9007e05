package azure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewBlobStorageClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name          string
		accountName   string
		accountKey    string
		containerName string
	}{
		{"missing account name", "", "key", "lab-reports"},
		{"missing account key", "account", "", "lab-reports"},
		{"missing container", "account", "key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlobStorageClient(tt.accountName, tt.accountKey, tt.containerName, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestMockBlobStorageClient_UploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	client := NewMockBlobStorageClient(zap.NewNop())

	data := []byte("%PDF-1.4 fake report")
	blobName, err := client.UploadPDF(ctx, "user-1", "doc-1", data)
	require.NoError(t, err)
	assert.Equal(t, "documents/user-1/doc-1.pdf", blobName)

	downloaded, err := client.DownloadPDF(ctx, blobName)
	require.NoError(t, err)
	assert.Equal(t, data, downloaded)

	require.NoError(t, client.DeletePDF(ctx, blobName))

	_, err = client.DownloadPDF(ctx, blobName)
	assert.Error(t, err)
}

func TestMockBlobStorageClient_DownloadMissingBlob(t *testing.T) {
	client := NewMockBlobStorageClient(nil)

	_, err := client.DownloadPDF(context.Background(), "documents/unknown/missing.pdf")
	assert.ErrorContains(t, err, "blob not found")
}
