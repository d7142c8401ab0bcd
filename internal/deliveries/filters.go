package deliveries

import "github.com/seasistemi/deliveryops/internal/filters"

// FilterDefinitions lists the filterable columns of the delivery table,
// in display order.
func FilterDefinitions() []filters.Definition {
	return []filters.Definition{
		{Key: "title", Title: "Cliente", Type: filters.TypeText},
		{Key: "document", Title: "Documento", Type: filters.TypeText},
		{Key: "zone_id", Title: "Zona", Type: filters.TypeNumber},
		{Key: "carrier_name", Title: "Trasportatore", Type: filters.TypeText},
		{Key: "is_prepared", Title: "Preparata", Type: filters.TypeSelect, Options: boolOptions()},
		{Key: "is_loaded", Title: "Caricata", Type: filters.TypeSelect, Options: boolOptions()},
		{Key: "is_delivered", Title: "Consegnata", Type: filters.TypeSelect, Options: boolOptions()},
		{Key: "date", Title: "Data", Type: filters.TypeDateRange},
	}
}

func boolOptions() []filters.Option {
	return []filters.Option{
		{Value: "1", Label: "Sì"},
		{Value: "0", Label: "No"},
	}
}
