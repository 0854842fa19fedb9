package schema

import (
	"fmt"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// contactTypeOptions are the select options offered for contact types.
var contactTypeOptions = []string{"customer service", "sales", "support", "billing", "general"}

// contactLabel describes an indexed contact field by the element's
// contactType, e.g. "sales phone number".
func contactLabel(suffix string) func(elem any, i int) string {
	return func(elem any, _ int) string {
		label := "Contact"
		if ct, ok := jsonld.LookupScalar(elem, p("contactType")); ok {
			label = jsonld.String(ct)
		}
		return fmt.Sprintf("%s %s", label, suffix)
	}
}

// personRules harvest sibling Person entities of an @graph document.
var personRules = []rule{
	{name: "person_%d_name", paths: paths(p("name")), fieldType: types.FieldText, description: "Person #%d name"},
	{name: "person_%d_jobTitle", paths: paths(p("jobTitle")), fieldType: types.FieldText, description: "Person #%d job title"},
	{name: "person_%d_email", paths: paths(p("email")), fieldType: types.FieldEmail, description: "Person #%d email"},
	{name: "person_%d_telephone", paths: paths(p("telephone")), fieldType: types.FieldTel, description: "Person #%d telephone"},
	{name: "person_%d_url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Person #%d profile URL"},
}

var organizationTable = &table{
	schemaType: "Organization",
	fields: []rule{
		{name: "name", paths: paths(p("name")), fieldType: types.FieldText, description: "Organization name"},
		{name: "alternateName", paths: paths(p("alternateName")), fieldType: types.FieldText, description: "Alternate name or trading name"},
		{name: "url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Organization website"},
		{name: "logoUrl", paths: paths(p("logo", "url"), p("logo")), fieldType: types.FieldURL, description: "Organization logo URL"},
		{name: "logoWidth", paths: paths(p("logo", "width")), fieldType: types.FieldText, description: "Logo image width"},
		{name: "logoHeight", paths: paths(p("logo", "height")), fieldType: types.FieldText, description: "Logo image height"},
		{name: "description", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Organization description"},
		{name: "slogan", paths: paths(p("slogan")), fieldType: types.FieldText, description: "Organization slogan"},
		{name: "foundingDate", paths: paths(p("foundingDate")), fieldType: types.FieldText, description: "Founding date or year"},
		{name: "numberOfEmployees", paths: paths(p("numberOfEmployees", "value"), p("numberOfEmployees")), fieldType: types.FieldText, description: "Number of employees"},
		{name: "employeeUnit", paths: paths(p("numberOfEmployees", "unitText")), fieldType: types.FieldText, description: "Employee count unit"},
		{name: "parentOrgName", paths: paths(p("parentOrganization", "name")), fieldType: types.FieldText, description: "Parent organization name"},
		{name: "parentOrgUrl", paths: paths(p("parentOrganization", "url")), fieldType: types.FieldURL, description: "Parent organization website"},

		{name: "addressStreet", paths: paths(p("address", "streetAddress")), fieldType: types.FieldText, description: "Street address"},
		{name: "addressCity", paths: paths(p("address", "addressLocality")), fieldType: types.FieldText, description: "City or locality"},
		{name: "addressRegion", paths: paths(p("address", "addressRegion")), fieldType: types.FieldText, description: "Region or state"},
		{name: "addressPostalCode", paths: paths(p("address", "postalCode")), fieldType: types.FieldText, description: "Postal code"},
		{name: "addressCountry", paths: paths(p("address", "addressCountry")), fieldType: types.FieldText, description: "Country"},

		// A single contact point object; arrays are handled by the group below.
		{name: "telephone", paths: paths(p("contactPoint", "telephone")), fieldType: types.FieldTel, description: "Contact telephone"},
		{name: "email", paths: paths(p("contactPoint", "email")), fieldType: types.FieldEmail, description: "Contact email"},
		{name: "contactType", paths: paths(p("contactPoint", "contactType")), fieldType: types.FieldSelect, description: "Contact type", options: contactTypeOptions},
		{name: "contactAreaServed", paths: paths(p("contactPoint", "areaServed")), fieldType: types.FieldText, description: "Contact area served", kind: kindList},
		{name: "availableLanguage", paths: paths(p("contactPoint", "availableLanguage")), fieldType: types.FieldText, description: "Contact languages", kind: kindList},

		{name: "knowsAbout", paths: paths(p("knowsAbout")), fieldType: types.FieldTextarea, description: "Areas of expertise (comma-separated)", kind: kindList},

		{name: "ratingValue", paths: paths(p("aggregateRating", "ratingValue")), fieldType: types.FieldText, description: "Rating value"},
		{name: "bestRating", paths: paths(p("aggregateRating", "bestRating")), fieldType: types.FieldText, description: "Best possible rating"},
		{name: "ratingCount", paths: paths(p("aggregateRating", "ratingCount")), fieldType: types.FieldText, description: "Number of ratings"},
		{name: "ratingDescription", paths: paths(p("aggregateRating", "description")), fieldType: types.FieldText, description: "Rating description"},

		{name: "taxID", paths: paths(p("taxID")), fieldType: types.FieldText, description: "Tax identification number"},
		{name: "vatID", paths: paths(p("vatID")), fieldType: types.FieldText, description: "VAT identification number"},
	},
	groups: []group{
		{
			paths: paths(p("contactPoint")),
			rules: []rule{
				{name: "contact_%d_phone", paths: paths(p("telephone")), fieldType: types.FieldTel, describe: contactLabel("phone number")},
				{name: "contact_%d_email", paths: paths(p("email")), fieldType: types.FieldEmail, describe: contactLabel("email")},
				{name: "contact_%d_type", paths: paths(p("contactType")), fieldType: types.FieldSelect, description: "Contact type #%d", options: contactTypeOptions},
				{name: "contact_%d_hours", paths: paths(p("hoursAvailable")), fieldType: types.FieldText, describe: contactLabel("hours"), kind: kindHours},
				{name: "contact_%d_areaServed", paths: paths(p("areaServed")), fieldType: types.FieldText, describe: contactLabel("area served"), kind: kindList},
				{name: "contact_%d_language", paths: paths(p("availableLanguage")), fieldType: types.FieldText, describe: contactLabel("languages"), kind: kindList},
			},
		},
		{
			paths: paths(p("department")),
			rules: []rule{
				{name: "department_%d_name", paths: paths(p("name")), fieldType: types.FieldText, description: "Department #%d name"},
				{name: "department_%d_phone", paths: paths(p("contactPoint", "telephone")), fieldType: types.FieldTel, description: "Department #%d phone"},
				{name: "department_%d_email", paths: paths(p("contactPoint", "email")), fieldType: types.FieldEmail, description: "Department #%d email"},
			},
		},
		{
			paths: paths(p("memberOf")),
			rules: []rule{
				{name: "memberOf_%d_name", paths: paths(p("name")), fieldType: types.FieldText, description: "Partnership #%d name"},
				{name: "memberOf_%d_url", paths: paths(p("url")), fieldType: types.FieldURL, description: "Partnership #%d URL"},
			},
		},
		{
			paths: paths(p("award")),
			rules: []rule{
				{name: "award_%d", paths: paths(p()), fieldType: types.FieldText, description: "Award #%d"},
			},
		},
		{
			paths: paths(p("sameAs")),
			rules: []rule{
				{name: "social_%d", paths: paths(p()), fieldType: types.FieldURL, description: "Social media profile #%d"},
			},
		},
		{
			paths: paths(p("areaServed")),
			rules: []rule{
				{name: "areaServed_%d", paths: paths(p("name"), p()), fieldType: types.FieldText, description: "Area served #%d"},
			},
		},
	},
	siblings: []sibling{
		{
			graphType: "WebPage",
			rules: []rule{
				{name: "webPageName", paths: paths(p("name")), fieldType: types.FieldText, description: "Web page name"},
				{name: "webPageDescription", paths: paths(p("description")), fieldType: types.FieldTextarea, description: "Web page description"},
				{name: "webPageUrl", paths: paths(p("url")), fieldType: types.FieldURL, description: "Web page URL"},
				{name: "webPageMainEntityOfPage", paths: paths(p("mainEntityOfPage", "@id"), p("mainEntityOfPage")), fieldType: types.FieldURL, description: "Main entity of page"},
			},
		},
		{graphType: "Person", indexed: true, rules: personRules},
	},
}

// indexedContact describes a contact field as "Contact phone #1 (sales)".
func indexedContact(prefix string) func(elem any, i int) string {
	return func(elem any, i int) string {
		ct := "general"
		if v, ok := jsonld.LookupScalar(elem, p("contactType")); ok {
			ct = jsonld.String(v)
		}
		return fmt.Sprintf("%s #%d (%s)", prefix, i+1, ct)
	}
}
