package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"goshorturl/models"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

// NewCosmosRepo opens container inside database dbName of the Cosmos DB
// account at endpoint. Items are partitioned by their id.
func NewCosmosRepo(endpoint, key, dbName, container string) (Repository, error) {
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, fmt.Errorf("cosmos credential: %w", err)
	}
	client, err := azcosmos.NewClientWithKey(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("cosmos client: %w", err)
	}
	c, err := client.NewContainer(dbName, container)
	if err != nil {
		return nil, fmt.Errorf("cosmos container: %w", err)
	}
	return &cosmosRepository{container: c}, nil
}

type cosmosRepository struct {
	container *azcosmos.ContainerClient
}

func (r *cosmosRepository) Upsert(ctx context.Context, link *models.ShortLink) error {
	item, err := json.Marshal(link)
	if err != nil {
		return err
	}
	pk := azcosmos.NewPartitionKeyString(link.ID)
	if _, err := r.container.UpsertItem(ctx, pk, item, nil); err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

func (r *cosmosRepository) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	pk := azcosmos.NewPartitionKeyString(id)
	resp, err := r.container.ReadItem(ctx, pk, id, nil)
	if err != nil {
		return nil, cosmosError("read item", err)
	}
	return decodeCosmosItem(resp.Value)
}

// IncrementClicks applies a server-side patch, so concurrent redirects never
// overwrite each other's increment.
func (r *cosmosRepository) IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error) {
	pk := azcosmos.NewPartitionKeyString(id)
	ops := azcosmos.PatchOperations{}
	ops.AppendIncrement("/clicks", 1)

	resp, err := r.container.PatchItem(ctx, pk, id, ops, &azcosmos.ItemOptions{
		EnableContentResponseOnWrite: true,
	})
	if err != nil {
		return nil, cosmosError("patch item", err)
	}
	return decodeCosmosItem(resp.Value)
}

func decodeCosmosItem(value []byte) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := json.Unmarshal(value, &link); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return &link, nil
}

func cosmosError(op string, err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
