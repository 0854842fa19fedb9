package schema

import "github.com/mesh-intelligence/schemaboard/pkg/types"

// availabilityOptions are the schema.org ItemAvailability values offered in
// the editor, without the schema.org prefix.
var availabilityOptions = []string{"InStock", "OutOfStock", "PreOrder", "Discontinued", "LimitedAvailability"}

var productTable = &table{
	schemaType: "Product",
	fields: []rule{
		{name: "name", paths: paths(p("name")), fieldType: types.FieldText, description: "Product name"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Product description"},
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Product page URL"},

		// brand and manufacturer are either a plain string or an object with
		// a name; the two shapes surface under different field names.
		{name: "brand", paths: paths(p("brand")), fieldType: types.FieldText, description: "Brand name"},
		{name: "brandName", paths: paths(p("brand", "name")), fieldType: types.FieldText, description: "Brand name"},

		{name: "sku", paths: paths(p("sku")), fieldType: types.FieldText, description: "Product SKU/Item number"},
		{name: "mpn", paths: paths(p("mpn")), fieldType: types.FieldText, description: "Manufacturer Part Number"},
		{name: "gtin", paths: paths(p("gtin"), p("gtin13"), p("gtin12"), p("gtin8")), fieldType: types.FieldText, description: "GTIN/Barcode number"},
		{name: "category", paths: paths(p("category")), fieldType: types.FieldText, description: "Product category"},
		{name: "image", paths: paths(p("image")), fieldType: types.FieldTextarea, description: "Product image URLs (comma-separated)", kind: kindList},

		{name: "price", paths: paths(p("offers", "price"), p("offers", "lowPrice"), p("offers", "highPrice")), fieldType: types.FieldText, description: "Product price"},
		{name: "priceCurrency", paths: paths(p("offers", "priceCurrency")), fieldType: types.FieldText, description: "Price currency (e.g., USD, EUR, GBP)"},
		{name: "availability", paths: paths(p("offers", "availability")), fieldType: types.FieldSelect, description: "Product availability", options: availabilityOptions, kind: kindEnum},
		{name: "offerUrl", paths: paths(p("offers", "url")), fieldType: types.FieldURL, description: "Purchase/offer URL"},

		{name: "color", paths: paths(p("color")), fieldType: types.FieldText, description: "Product color(s)", kind: kindList},
		{name: "size", paths: paths(p("size")), fieldType: types.FieldText, description: "Product size"},
		{name: "weight", paths: paths(p("weight", "value"), p("weight")), fieldType: types.FieldText, description: "Product weight"},

		{name: "manufacturer", paths: paths(p("manufacturer")), fieldType: types.FieldText, description: "Manufacturer name"},
		{name: "manufacturerName", paths: paths(p("manufacturer", "name")), fieldType: types.FieldText, description: "Manufacturer name"},
		{name: "model", paths: paths(p("model")), fieldType: types.FieldText, description: "Product model"},

		{name: "ratingValue", paths: paths(p("aggregateRating", "ratingValue")), fieldType: types.FieldNumber, description: "Average rating value"},
		{name: "bestRating", paths: paths(p("aggregateRating", "bestRating")), fieldType: types.FieldNumber, description: "Best possible rating"},
		{name: "reviewCount", paths: paths(p("aggregateRating", "reviewCount"), p("aggregateRating", "ratingCount")), fieldType: types.FieldNumber, description: "Number of reviews/ratings"},
	},
}
