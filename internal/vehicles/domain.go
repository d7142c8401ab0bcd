// Package vehicles manages the fleet records and joins them with live
// tracker data.
package vehicles

import (
	"github.com/seasistemi/deliveryops/internal/tracking"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// VehicleFields are the custom fields attached to a vehicle post.
type VehicleFields struct {
	Plate string `json:"plate"`
	IMEI  string `json:"imei"`
}

// Vehicle is a fleet vehicle post.
type Vehicle struct {
	wordpress.Post
	ACF VehicleFields `json:"acf"`
}

// VehicleWithDevice pairs a vehicle with its live tracker, when one is
// installed.
type VehicleWithDevice struct {
	Vehicle
	Device *tracking.Device `json:"device,omitempty"`
}
