package schema

import "github.com/mesh-intelligence/schemaboard/pkg/types"

var publisherContactTypeOptions = []string{"Customer Service", "Sales", "Support", "General Inquiry"}

var articleTable = &table{
	schemaType: "Article",
	fields: []rule{
		{name: "headline", paths: paths(p("headline")), fieldType: types.FieldText, description: "Article headline/title"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Article description"},
		{name: "keywords", paths: paths(p("keywords")), fieldType: types.FieldTextarea, description: "Article keywords (comma-separated)", kind: kindList},
		{name: "datePublished", paths: paths(p("datePublished")), fieldType: types.FieldDate, description: "Publication date"},
		{name: "dateModified", paths: paths(p("dateModified")), fieldType: types.FieldDate, description: "Last modification date"},
		{name: "mainEntityOfPage", paths: paths(p("mainEntityOfPage", "@id"), p("mainEntityOfPage")), fieldType: types.FieldURL, description: "Article URL"},

		{name: "authorName", paths: paths(p("author", "name")), fieldType: types.FieldText, description: "Author name"},
		{name: "authorJobTitle", paths: paths(p("author", "jobTitle")), fieldType: types.FieldText, description: "Author job title"},
		{name: "authorSameAs", paths: paths(p("author", "sameAs")), fieldType: types.FieldURL, description: "Author social profile URL", kind: kindList},
		{name: "authorImage", paths: paths(p("author", "image", "url"), p("author", "image")), fieldType: types.FieldURL, description: "Author image URL"},

		{name: "publisherName", paths: paths(p("publisher", "name")), fieldType: types.FieldText, description: "Publisher/organization name"},
		{name: "publisherLogoUrl", paths: paths(p("publisher", "logo", "url")), fieldType: types.FieldURL, description: "Publisher logo URL"},
		{name: "publisherTelephone", paths: paths(p("publisher", "contactPoint", "telephone")), fieldType: types.FieldTel, description: "Publisher contact phone"},
		{name: "publisherContactType", paths: paths(p("publisher", "contactPoint", "contactType")), fieldType: types.FieldSelect, description: "Publisher contact type", options: publisherContactTypeOptions},
		{name: "publisherAreaServed", paths: paths(p("publisher", "contactPoint", "areaServed")), fieldType: types.FieldText, description: "Area served by publisher", kind: kindList},
		{name: "publisherStreetAddress", paths: paths(p("publisher", "address", "streetAddress")), fieldType: types.FieldText, description: "Publisher street address"},
		{name: "publisherAddressLocality", paths: paths(p("publisher", "address", "addressLocality")), fieldType: types.FieldText, description: "Publisher city/locality"},
		{name: "publisherAddressRegion", paths: paths(p("publisher", "address", "addressRegion")), fieldType: types.FieldText, description: "Publisher state/region"},
		{name: "publisherPostalCode", paths: paths(p("publisher", "address", "postalCode")), fieldType: types.FieldText, description: "Publisher postal code"},
		{name: "publisherAddressCountry", paths: paths(p("publisher", "address", "addressCountry")), fieldType: types.FieldText, description: "Publisher country"},
	},
	siblings: []sibling{
		{graphType: "Person", indexed: true, rules: personRules},
	},
}

var serviceTable = &table{
	schemaType: "Service",
	fields: []rule{
		{name: "name", paths: paths(p("name")), fieldType: types.FieldText, description: "Service name"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Service description"},
		{name: "providerName", paths: paths(p("provider", "name")), fieldType: types.FieldText, description: "Provider/company name"},
		{name: "providerUrl", paths: paths(p("provider", "url")), fieldType: types.FieldURL, description: "Provider website URL"},
		{name: "providerLogo", paths: paths(p("provider", "logo", "url"), p("provider", "logo")), fieldType: types.FieldURL, description: "Provider logo URL"},
		{name: "offersDescription", paths: paths(p("offers", "description")), fieldType: types.FieldTextarea, description: "Service offering description"},
		{name: "areaServed", paths: paths(p("areaServed")), fieldType: types.FieldText, description: "Areas served (separate multiple with commas)", kind: kindList},
		{name: "serviceType", paths: paths(p("serviceType")), fieldType: types.FieldText, description: "Service types (separate multiple with commas)", kind: kindList},
		{name: "image", paths: paths(p("image", "url"), p("image")), fieldType: types.FieldURL, description: "Service image URL", kind: kindList},
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Service page URL"},
	},
	groups: []group{
		{
			paths: paths(p("provider", "contactPoint")),
			rules: []rule{
				{name: "contactPhone_%d", paths: paths(p("telephone")), fieldType: types.FieldTel, describe: indexedContact("Contact phone")},
				{name: "contactEmail_%d", paths: paths(p("email")), fieldType: types.FieldEmail, describe: indexedContact("Contact email")},
			},
		},
	},
}

// defaultTable covers any content type without a dedicated table.
var defaultTable = &table{
	fields: []rule{
		{name: "name", paths: paths(p("name")), fieldType: types.FieldText, description: "Name"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Description"},
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "URL"},
	},
}

// commonTable holds the generic properties the additive pass surfaces on any
// content type. Only keys absent from the handler's output are added.
var commonTable = &table{
	fields: []rule{
		{name: "offersDescription", paths: paths(p("offers", "description")), fieldType: types.FieldTextarea, description: "Offer description"},
		{name: "brandName", paths: paths(p("brand", "name")), fieldType: types.FieldText, description: "Brand name"},
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "URL"},
	},
}
