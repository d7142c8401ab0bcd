// Package customers manages the customer registry.
package customers

import "github.com/seasistemi/deliveryops/internal/wordpress"

// CustomerFields are the custom fields attached to a customer post.
type CustomerFields struct {
	Email           string `json:"email"`
	SeaCode         string `json:"sea_code"`
	AddressName     string `json:"address_name"`
	AddressStreet   string `json:"address_street"`
	AddressLocation string `json:"address_location"`
	AddressZip      string `json:"address_zip"`
	AddressProvince string `json:"address_province"`
}

// Customer is a customer post.
type Customer struct {
	wordpress.Post
	ACF CustomerFields `json:"acf"`
}
