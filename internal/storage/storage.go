// Package storage provides blob storage for uploaded documents with an Azure
// Blob Storage implementation. The pipeline depends only on the System
// contract: bytes plus a logical folder path in, an opaque URL locator out.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// System stores document bytes and issues locators for them.
type System interface {
	// Upload writes data under folder/name and returns its URL locator.
	Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error)
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New creates an Azure-backed storage system from the given configuration.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

func (a *azure) Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	key := BuildKey(folder, name)
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}

	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}
	if _, err := a.client.UploadBuffer(ctx, a.container, key, data, opts); err != nil {
		return "", fmt.Errorf("upload blob %s: %w", key, err)
	}

	url := strings.TrimRight(a.client.URL(), "/") + "/" + a.container + "/" + key
	a.logger.Info("storage.upload.ok", "key", key, "bytes", len(data))
	return url, nil
}

// BuildKey joins a logical folder path and filename into a blob key, with
// spaces normalized the way patient folders are laid out
// (medicare/patients/<name>/<kind>/<file>).
func BuildKey(folder, name string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	key := name
	if folder != "" {
		key = folder + "/" + name
	}
	return strings.ReplaceAll(key, " ", "_")
}
