// Package deliveries manages delivery records: CRUD, zone/route scoped
// listings, carrier notes, status checks and PDF generation.
package deliveries

import "github.com/seasistemi/deliveryops/internal/wordpress"

// DeliveryFields are the custom fields attached to a delivery post.
type DeliveryFields struct {
	SeaID                string  `json:"sea_id"`
	ZoneSeaID            string  `json:"zone_sea_id"`
	ZoneID               string  `json:"zone_id"`
	Date                 string  `json:"date"`
	ZoneName             string  `json:"zone_name"`
	CarrierName          string  `json:"carrier_name"`
	VehicleName          string  `json:"vehicle_name"`
	SeaCustomerCode      string  `json:"sea_customer_code"`
	CustomerID           string  `json:"customer_id"`
	Document             string  `json:"document"`
	ArticleCount         int     `json:"article_count"`
	WeightedArticleCount float64 `json:"weighted_article_count"`
	Qty                  float64 `json:"qty"`
	WeightedQty          float64 `json:"weighted_qty"`
	IsPrepared           bool    `json:"is_prepared"`
	IsLoaded             bool    `json:"is_loaded"`
	IsDelivered          bool    `json:"is_delivered"`
	IsPreparedDate       string  `json:"is_prepared_date,omitempty"`
	IsLoadedDate         string  `json:"is_loaded_date,omitempty"`
	IsDeliveredDate      string  `json:"is_delivered_date,omitempty"`
	Gallery              []int   `json:"gallery"`
}

// Delivery is a delivery record post.
type Delivery struct {
	wordpress.Post
	ClassList []string       `json:"class_list"`
	ACF       DeliveryFields `json:"acf"`
}

// Check identifies one of the three delivery status flags.
type Check string

// The three status checks a carrier flips during a tour.
const (
	CheckPrepared  Check = "is_prepared"
	CheckLoaded    Check = "is_loaded"
	CheckDelivered Check = "is_delivered"
)

// Valid reports whether c names a known check.
func (c Check) Valid() bool {
	switch c {
	case CheckPrepared, CheckLoaded, CheckDelivered:
		return true
	default:
		return false
	}
}

// PdfResult is the answer of the delivery PDF generation endpoint.
type PdfResult struct {
	URL string `json:"url"`
}
