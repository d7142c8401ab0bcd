// Package zones manages the delivery zone registry.
package zones

import "github.com/seasistemi/deliveryops/internal/wordpress"

// ZoneFields are the custom fields attached to a zone post.
type ZoneFields struct {
	SeaID       string `json:"sea_id"`
	WarehouseID string `json:"warehouse_id"`
}

// Zone is a delivery zone post.
type Zone struct {
	wordpress.Post
	ACF ZoneFields `json:"acf"`
}
