package schema

import "github.com/mesh-intelligence/schemaboard/pkg/types"

var faqPageTable = &table{
	schemaType: "FAQPage",
	fields: []rule{
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "FAQ page URL"},
		{name: "publisherName", paths: paths(p("publisher", "name")), fieldType: types.FieldText, description: "Organization publishing the FAQ"},
		{name: "publisherDescription", paths: paths(p("publisher", "description")), fieldType: types.FieldTextarea, description: "Description of the publishing organization"},
		{name: "publisherUrl", paths: paths(p("publisher", "url")), fieldType: types.FieldURL, description: "Publisher website URL"},
	},
	groups: []group{
		{
			paths: paths(p("mainEntity")),
			rules: []rule{
				{name: "question_%d", paths: paths(p("name")), fieldType: types.FieldText, description: "FAQ question #%d"},
				{name: "answer_%d", paths: paths(p("acceptedAnswer", "text")), fieldType: types.FieldTextarea, description: "FAQ answer for question #%d"},
			},
		},
		{
			paths: paths(p("service")),
			rules: []rule{
				{name: "serviceName_%d", paths: paths(p("name")), fieldType: types.FieldText, description: "Service %d name", guarded: true},
				{name: "serviceDescription_%d", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Service %d description", guarded: true},
			},
		},
		{
			paths: paths(p("product")),
			rules: []rule{
				{name: "productName_%d", paths: paths(p("name")), fieldType: types.FieldText, description: "Product %d name", guarded: true},
				{name: "productDescription_%d", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Product %d description", guarded: true},
			},
		},
	},
}

var eventTable = &table{
	schemaType: "Event",
	fields: []rule{
		{name: "name", paths: paths(p("name")), fieldType: types.FieldText, description: "Event name"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Event description"},
		{name: "startDate", paths: paths(p("startDate")), fieldType: types.FieldDate, description: "Event start date"},
		{name: "endDate", paths: paths(p("endDate")), fieldType: types.FieldDate, description: "Event end date"},
		{name: "locationName", paths: paths(p("location", "name")), fieldType: types.FieldText, description: "Event venue name"},
		{name: "locationAddress", paths: paths(p("location", "address", "streetAddress")), fieldType: types.FieldText, description: "Venue street address"},
		{name: "locationCity", paths: paths(p("location", "address", "addressLocality")), fieldType: types.FieldText, description: "Venue city"},
		{name: "locationCountry", paths: paths(p("location", "address", "addressCountry")), fieldType: types.FieldText, description: "Venue country"},
		{name: "organizerName", paths: paths(p("organizer", "name")), fieldType: types.FieldText, description: "Event organizer name"},
		{name: "organizerUrl", paths: paths(p("organizer", "url")), fieldType: types.FieldURL, description: "Organizer website"},
		{name: "offerPrice", paths: paths(p("offers", "price")), fieldType: types.FieldText, description: "Ticket price"},
		{name: "offerDescription", paths: paths(p("offers", "description")), fieldType: types.FieldTextarea, description: "Offer details"},
	},
	groups: []group{
		{
			paths: paths(p("agenda")),
			rules: []rule{
				{name: "agenda_%d", paths: paths(p("name")), fieldType: types.FieldText, description: "Agenda item #%d"},
			},
		},
		{
			paths: paths(p("speakers"), p("performer")),
			rules: []rule{
				{name: "speaker_%d_name", paths: paths(p("name")), fieldType: types.FieldText, description: "Speaker #%d name"},
				{name: "speaker_%d_company", paths: paths(p("worksFor", "name")), fieldType: types.FieldText, description: "Speaker #%d company"},
				{name: "speaker_%d_url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Speaker #%d profile URL"},
			},
		},
	},
}
