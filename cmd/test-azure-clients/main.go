package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/meditwin/backend/internal/azure"
)

// Connectivity smoke test for the Azure collaborators. Run manually with
// real credentials in the environment before deploying.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	openaiEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	openaiKey := os.Getenv("AZURE_OPENAI_KEY")
	openaiDeployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	storageAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	storageAccountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")

	if openaiEndpoint == "" || openaiKey == "" || openaiDeployment == "" {
		logger.Fatal("Missing Azure OpenAI credentials. Set AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_KEY, and AZURE_OPENAI_DEPLOYMENT")
	}

	if storageAccountName == "" || storageAccountKey == "" {
		logger.Fatal("Missing Azure Storage credentials. Set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_ACCOUNT_KEY")
	}

	ctx := context.Background()

	logger.Info("=== Testing Azure OpenAI Client ===")
	if err := testOpenAIClient(ctx, openaiEndpoint, openaiKey, openaiDeployment, logger); err != nil {
		logger.Error("OpenAI client test failed", zap.Error(err))
	} else {
		logger.Info("OpenAI client test passed")
	}

	logger.Info("=== Testing Azure Blob Storage Client ===")
	if err := testBlobStorageClient(ctx, storageAccountName, storageAccountKey, logger); err != nil {
		logger.Error("Blob storage client test failed", zap.Error(err))
	} else {
		logger.Info("Blob storage client test passed")
	}

	logger.Info("=== All tests completed ===")
}

func testOpenAIClient(ctx context.Context, endpoint, apiKey, deployment string, logger *zap.Logger) error {
	client, err := azure.NewOpenAIClient(endpoint, apiKey, deployment, logger)
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a medical document analysis assistant."),
		openai.UserMessage("Reply with a one-sentence confirmation that you can analyze lab reports."),
	}

	response, err := client.Complete(ctx, messages)
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	logger.Info("OpenAI response received",
		zap.String("response", response),
		zap.Int("response_length", len(response)),
	)

	return nil
}

func testBlobStorageClient(ctx context.Context, accountName, accountKey string, logger *zap.Logger) error {
	client, err := azure.NewBlobStorageClient(accountName, accountKey, "lab-reports", logger)
	if err != nil {
		return fmt.Errorf("failed to create blob storage client: %w", err)
	}

	testData := []byte("%PDF-1.4 smoke test payload")

	blobName, err := client.UploadPDF(ctx, "smoke-test-user", "smoke-test-document", testData)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	logger.Info("Uploaded test blob", zap.String("blob_name", blobName))

	downloaded, err := client.DownloadPDF(ctx, blobName)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if string(downloaded) != string(testData) {
		return fmt.Errorf("downloaded data does not match uploaded data")
	}
	logger.Info("Downloaded test blob", zap.Int("size_bytes", len(downloaded)))

	if err := client.DeletePDF(ctx, blobName); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	logger.Info("Deleted test blob", zap.String("blob_name", blobName))

	return nil
}
