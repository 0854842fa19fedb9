package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

func extract(t *testing.T, doc any) types.FieldSet {
	t.Helper()
	return DefaultRegistry().Resolve(doc).ExtractFields(doc, nil)
}

func TestExtractFields_FAQPageMinimal(t *testing.T) {
	doc := mustDecode(t, `{"@type":"FAQPage","url":"https://x.test/faq","mainEntity":[{"name":"Q1","acceptedAnswer":{"text":"A1"}}]}`)

	fields := extract(t, doc)

	require.Len(t, fields, 3)
	assert.Equal(t, types.FieldURL, fields["url"].FieldType)
	assert.Equal(t, "https://x.test/faq", fields["url"].Value)
	assert.Equal(t, types.FieldText, fields["question_0"].FieldType)
	assert.Equal(t, "Q1", fields["question_0"].Value)
	assert.Equal(t, types.FieldTextarea, fields["answer_0"].FieldType)
	assert.Equal(t, "A1", fields["answer_0"].Value)
}

func TestExtractFields_FAQIndexedUniqueness(t *testing.T) {
	fields := extract(t, mustDecode(t, faqDoc))

	for _, key := range []string{"question_0", "question_1", "question_2", "answer_0", "answer_2"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "answer_1", "entry without an answer yields no answer field")
	assert.NotContains(t, fields, "question_3")
	assert.Equal(t, "FAQ question #2", fields["question_1"].Description)
	assert.Equal(t, "Cloud migration", fields["serviceName_0"].Value)
	assert.Equal(t, "Acme", fields["publisherName"].Value)
}

func TestExtractFields_FAQSkipsCoveredServiceFields(t *testing.T) {
	doc := mustDecode(t, faqDoc)
	prior := types.FieldSet{"serviceName_0": {Value: "Custom", FieldType: types.FieldText}}

	fields := DefaultRegistry().Select("FAQPage").ExtractFields(doc, prior)

	assert.NotContains(t, fields, "serviceName_0")
	assert.Contains(t, fields, "serviceDescription_0")
}

func TestExtractFields_Event(t *testing.T) {
	fields := extract(t, mustDecode(t, eventDoc))

	assert.Equal(t, "Data Summit", fields["name"].Value)
	assert.Equal(t, types.FieldDate, fields["startDate"].FieldType)
	assert.Equal(t, "Hall A", fields["locationName"].Value)
	assert.Equal(t, "Berlin", fields["locationCity"].Value)
	assert.Equal(t, json.Number("0"), fields["offerPrice"].Value, "a zero price is still a value")
	assert.Equal(t, "Keynote", fields["agenda_0"].Value)
	assert.Equal(t, "Panel", fields["agenda_1"].Value)
	assert.Equal(t, "Ann", fields["speaker_0_name"].Value)
	assert.Equal(t, "Acme", fields["speaker_0_company"].Value)
	assert.Equal(t, "https://x.test/ann", fields["speaker_0_url"].Value)
	assert.NotContains(t, fields, "endDate")
}

func TestExtractFields_OrganizationGraph(t *testing.T) {
	fields := extract(t, mustDecode(t, organizationGraphDoc))

	want := map[string]any{
		"name":                    "Acme",
		"logoUrl":                 "https://x.test/logo.png",
		"logoWidth":               "200",
		"numberOfEmployees":       json.Number("50"),
		"employeeUnit":            "employees",
		"addressStreet":           "1 Main St",
		"contact_0_phone":         "+1-555",
		"contact_0_type":          "sales",
		"contact_0_hours":         "09:00 - 17:00",
		"contact_0_areaServed":    "US, CA",
		"contact_1_email":         "help@x.test",
		"knowsAbout":              "BI, Cloud",
		"social_0":                "https://x.test/a",
		"social_1":                "https://x.test/b",
		"award_0":                 "Best Vendor",
		"areaServed_0":            "Europe",
		"areaServed_1":            "Asia",
		"ratingValue":             json.Number("4.8"),
		"webPageName":             "About",
		"webPageUrl":              "https://x.test/about",
		"webPageMainEntityOfPage": "https://x.test/about",
		"person_0_name":           "Bob",
		"person_0_jobTitle":       "CEO",
		"person_1_name":           "Eve",
	}
	for key, value := range want {
		require.Contains(t, fields, key)
		assert.Equal(t, value, fields[key].Value, key)
	}

	assert.Equal(t, "sales phone number", fields["contact_0_phone"].Description)
	assert.Equal(t, "Contact email", fields["contact_1_email"].Description)
	assert.Equal(t, types.FieldSelect, fields["contact_0_type"].FieldType)
	assert.NotEmpty(t, fields["contact_0_type"].Options)
	assert.NotContains(t, fields, "telephone", "contact arrays do not populate single contact fields")
	assert.NotContains(t, fields, "person_1_jobTitle")
}

func TestExtractFields_Product(t *testing.T) {
	fields := extract(t, mustDecode(t, productDoc))

	assert.Equal(t, "Acme", fields["brand"].Value)
	assert.NotContains(t, fields, "brandName")
	assert.Equal(t, "4006381333931", fields["gtin"].Value)
	assert.Equal(t, "https://x.test/1.png, https://x.test/2.png", fields["image"].Value)
	assert.Equal(t, "9.99", fields["price"].Value)
	assert.Equal(t, "InStock", fields["availability"].Value)
	assert.Equal(t, types.FieldSelect, fields["availability"].FieldType)
	assert.Equal(t, json.Number("1.5"), fields["weight"].Value)
	assert.Equal(t, "Acme Works", fields["manufacturerName"].Value)
	assert.NotContains(t, fields, "manufacturer")
	assert.Equal(t, json.Number("7"), fields["reviewCount"].Value)
	assert.Equal(t, types.FieldNumber, fields["reviewCount"].FieldType)
}

func TestExtractFields_ArticleGraph(t *testing.T) {
	fields := extract(t, mustDecode(t, articleGraphDoc))

	assert.Equal(t, "Why BI", fields["headline"].Value)
	assert.Equal(t, "bi, analytics", fields["keywords"].Value)
	assert.Equal(t, "https://x.test/blog/bi", fields["mainEntityOfPage"].Value)
	assert.Equal(t, "https://x.test/in/ann", fields["authorSameAs"].Value)
	assert.Equal(t, "Sales", fields["publisherContactType"].Value)
	assert.Equal(t, "US", fields["publisherAreaServed"].Value)
	assert.Equal(t, "US", fields["publisherAddressCountry"].Value)
	assert.Equal(t, "Carl", fields["person_0_name"].Value)
	assert.Equal(t, "carl@x.test", fields["person_0_email"].Value)
	assert.NotContains(t, fields, "person_1_name", "the article's own author is not a graph sibling")
}

func TestExtractFields_Service(t *testing.T) {
	fields := extract(t, mustDecode(t, serviceDoc))

	assert.Equal(t, "Acme", fields["providerName"].Value)
	assert.Equal(t, "https://x.test/logo.png", fields["providerLogo"].Value)
	assert.Equal(t, "+1-555", fields["contactPhone_0"].Value)
	assert.Equal(t, "Contact phone #1 (sales)", fields["contactPhone_0"].Description)
	assert.Equal(t, "Contact email #2 (general)", fields["contactEmail_1"].Description)
	assert.Equal(t, "US, UK", fields["areaServed"].Value)
	assert.Equal(t, "Consulting", fields["serviceType"].Value)
	assert.Equal(t, "Monthly plans", fields["offersDescription"].Value)
}

func TestExtractFields_UnrecognizedType(t *testing.T) {
	fields := extract(t, mustDecode(t, recipeDoc))

	require.Len(t, fields, 2)
	assert.Equal(t, "Soup", fields["name"].Value)
	assert.Equal(t, "Hot soup", fields["description"].Value)
	assert.NotContains(t, fields, "url")
}

func TestExtractFields_EmptyStringsAreAbsent(t *testing.T) {
	fields := extract(t, mustDecode(t, `{"@type":"Recipe","name":"Soup","description":""}`))
	assert.NotContains(t, fields, "description")
}

func TestExtractFields_MalformedShapes(t *testing.T) {
	doc := mustDecode(t, `{"@type":"Organization","name":"Acme","address":"Berlin","contactPoint":"none","sameAs":"https://x.test/a"}`)

	fields := extract(t, doc)

	assert.Equal(t, "Acme", fields["name"].Value)
	assert.NotContains(t, fields, "addressCity")
	assert.NotContains(t, fields, "social_0")
}

func TestExtractFields_DoesNotMutate(t *testing.T) {
	for name, src := range allFixtures {
		t.Run(name, func(t *testing.T) {
			doc := mustDecode(t, src)
			before := jsonld.Clone(doc)
			_ = NewEditor(nil).GetFieldSet(doc, nil)
			assert.True(t, cmp.Equal(before, doc))
		})
	}
}

var allFixtures = map[string]string{
	"FAQPage":      faqDoc,
	"Event":        eventDoc,
	"Organization": organizationGraphDoc,
	"Product":      productDoc,
	"Article":      articleGraphDoc,
	"Service":      serviceDoc,
	"Recipe":       recipeDoc,
}

func TestApplyEdits_RoundTripIsIdentity(t *testing.T) {
	ed := NewEditor(nil)
	for name, src := range allFixtures {
		t.Run(name, func(t *testing.T) {
			doc := mustDecode(t, src)
			fields := ed.GetFieldSet(doc, nil)
			require.NotEmpty(t, fields)

			patched := ed.Registry().Resolve(doc).ApplyEdits(doc, ed.InitialBuffer(fields))

			assert.Empty(t, cmp.Diff(doc, patched))
		})
	}
}

func TestApplyEdits_ProductAvailability(t *testing.T) {
	doc := mustDecode(t, productDoc)
	h := DefaultRegistry().Select("Product")

	tests := []struct {
		edit string
		want string
	}{
		{"OutOfStock", "https://schema.org/OutOfStock"},
		{"https://schema.org/PreOrder", "https://schema.org/PreOrder"},
		{"InStock", "https://schema.org/InStock"},
	}
	for _, tt := range tests {
		t.Run(tt.edit, func(t *testing.T) {
			out := h.ApplyEdits(doc, types.EditBuffer{"availability": tt.edit})
			got, ok := jsonld.Lookup(out, jsonld.Path{"offers", "availability"})
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEdits_Product(t *testing.T) {
	doc := mustDecode(t, productDoc)

	out := DefaultRegistry().Select("Product").ApplyEdits(doc, types.EditBuffer{
		"price":  "12.50",
		"image":  "https://x.test/3.png, https://x.test/4.png, https://x.test/5.png",
		"weight": "2",
		"model":  "W-2",
	})

	offers := out.(map[string]any)["offers"].(map[string]any)
	assert.Equal(t, "12.50", offers["lowPrice"], "edit lands on the path the value was read from")
	assert.NotContains(t, offers, "price")
	assert.Equal(t, []any{"https://x.test/3.png", "https://x.test/4.png", "https://x.test/5.png"}, out.(map[string]any)["image"])
	weight, _ := jsonld.Lookup(out, jsonld.Path{"weight", "value"})
	assert.Equal(t, json.Number("2"), weight, "numeric leaves stay numeric")
	assert.Equal(t, "W-2", out.(map[string]any)["model"], "known rule writes its first path when absent")
}

func TestApplyEdits_OrganizationGraph(t *testing.T) {
	doc := mustDecode(t, organizationGraphDoc)
	before := jsonld.Clone(doc)

	out := DefaultRegistry().Select("Organization").ApplyEdits(doc, types.EditBuffer{
		"name":                 "Acme Corp",
		"social_1":             "https://x.test/c",
		"contact_0_hours":      "08:00 - 18:00",
		"contact_0_areaServed": "US, MX",
		"areaServed_1":         "Africa",
		"person_1_jobTitle":    "CTO",
		"webPageName":          "About Acme",
		"addressPostalCode":    "10115",
		"contact_5_phone":      "+9",
	})

	assert.Empty(t, cmp.Diff(before, doc), "input document is not mutated")

	graph, ok := jsonld.Graph(out)
	require.True(t, ok)
	org := graph[1].(map[string]any)
	assert.Equal(t, "Acme Corp", org["name"])
	assert.Equal(t, []any{"https://x.test/a", "https://x.test/c"}, org["sameAs"])
	cp := org["contactPoint"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"opens": "08:00", "closes": "18:00"}, cp["hoursAvailable"])
	assert.Equal(t, []any{"US", "MX"}, cp["areaServed"])
	assert.Len(t, org["contactPoint"], 2, "indexed edits past the end are dropped")
	assert.Equal(t, []any{map[string]any{"@type": "Place", "name": "Europe"}, "Africa"}, org["areaServed"])
	assert.Equal(t, "10115", org["address"].(map[string]any)["postalCode"])

	assert.Equal(t, "About Acme", graph[0].(map[string]any)["name"])
	assert.Equal(t, "CTO", graph[3].(map[string]any)["jobTitle"])
}

func TestApplyEdits_ServiceLists(t *testing.T) {
	doc := mustDecode(t, serviceDoc)

	out := DefaultRegistry().Select("Service").ApplyEdits(doc, types.EditBuffer{
		"areaServed":     "US, UK, DE",
		"serviceType":    "Consulting, Support",
		"contactEmail_1": "team@x.test",
	})

	obj := out.(map[string]any)
	assert.Equal(t, []any{"US", "UK", "DE"}, obj["areaServed"])
	assert.Equal(t, "Consulting, Support", obj["serviceType"], "scalar values stay scalar")
	email, _ := jsonld.Lookup(obj["provider"].(map[string]any)["contactPoint"].([]any)[1], jsonld.Path{"email"})
	assert.Equal(t, "team@x.test", email)
}

func TestApplyEdits_LiteralFallback(t *testing.T) {
	doc := mustDecode(t, eventDoc)

	out := DefaultRegistry().Select("Event").ApplyEdits(doc, types.EditBuffer{
		"inLanguage": "fr",
		"unknownKey": "dropped",
		"url":        "https://x.test/summit",
	})

	obj := out.(map[string]any)
	assert.Equal(t, "fr", obj["inLanguage"])
	assert.NotContains(t, obj, "unknownKey")
	assert.Equal(t, "https://x.test/summit", obj["url"], "generic url is patchable under any handler")
}

func TestApplyEdits_EmptyBufferCopies(t *testing.T) {
	doc := mustDecode(t, recipeDoc)
	out := DefaultHandler().ApplyEdits(doc, nil)

	assert.Empty(t, cmp.Diff(doc, out))
	out.(map[string]any)["name"] = "Stew"
	assert.Equal(t, "Soup", doc.(map[string]any)["name"])
}
