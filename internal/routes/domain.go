// Package routes manages driver routes, including the per-session active
// route singleton.
package routes

import "github.com/seasistemi/deliveryops/internal/wordpress"

// RouteFields are the custom fields attached to a route post.
type RouteFields struct {
	InternalVehicle bool   `json:"internal_vehicle"`
	VehicleID       string `json:"vehicle_id"`
	Plate           string `json:"plate"`
	Date            string `json:"date"`
	Active          bool   `json:"active"`
	ZoneID          string `json:"zone_id"`
}

// Route is a driver route post.
type Route struct {
	wordpress.Post
	ACF RouteFields `json:"acf"`
}
