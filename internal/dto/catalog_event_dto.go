package dto

import "github.com/google/uuid"

// ProductsDeletedMessage travels on the in-process bus and the cluster relay.
type ProductsDeletedMessage struct {
	OriginClientId string      `json:"origin_client_id"`
	InstanceId     string      `json:"instance_id"`
	ProductIds     []uuid.UUID `json:"product_ids"`
}
