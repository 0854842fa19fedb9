package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
)

func mustDecode(t *testing.T, src string) any {
	t.Helper()
	doc, err := jsonld.Decode([]byte(src))
	require.NoError(t, err)
	return doc
}

const faqDoc = `{
  "@context": "https://schema.org",
  "@type": "FAQPage",
  "url": "https://x.test/faq",
  "publisher": {"@type": "Organization", "name": "Acme", "url": "https://x.test"},
  "mainEntity": [
    {"@type": "Question", "name": "Q1", "acceptedAnswer": {"@type": "Answer", "text": "A1"}},
    {"@type": "Question", "name": "Q2"},
    {"@type": "Question", "name": "Q3", "acceptedAnswer": {"@type": "Answer", "text": "A3"}}
  ],
  "service": [{"name": "Cloud migration", "description": "Lift and shift"}]
}`

const eventDoc = `{
  "@context": "https://schema.org",
  "@type": "Event",
  "name": "Data Summit",
  "startDate": "2026-05-01",
  "inLanguage": "en",
  "location": {"@type": "Place", "name": "Hall A", "address": {"addressLocality": "Berlin", "addressCountry": "DE"}},
  "offers": {"price": 0, "description": "Free entry"},
  "agenda": [{"name": "Keynote"}, {"name": "Panel"}],
  "performer": [{"@type": "Person", "name": "Ann", "worksFor": {"name": "Acme"}, "url": "https://x.test/ann"}]
}`

const organizationGraphDoc = `{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "About", "url": "https://x.test/about", "mainEntityOfPage": {"@id": "https://x.test/about"}},
    {
      "@type": ["Thing", "Organization"],
      "name": "Acme",
      "url": "https://x.test",
      "logo": {"@type": "ImageObject", "url": "https://x.test/logo.png", "width": "200"},
      "numberOfEmployees": {"value": 50, "unitText": "employees"},
      "address": {"streetAddress": "1 Main St", "addressLocality": "Berlin"},
      "contactPoint": [
        {"@type": "ContactPoint", "telephone": "+1-555", "contactType": "sales",
         "hoursAvailable": {"opens": "09:00", "closes": "17:00"}, "areaServed": ["US", "CA"]},
        {"@type": "ContactPoint", "email": "help@x.test"}
      ],
      "knowsAbout": ["BI", "Cloud"],
      "sameAs": ["https://x.test/a", "https://x.test/b"],
      "award": ["Best Vendor"],
      "areaServed": [{"@type": "Place", "name": "Europe"}, "Asia"],
      "aggregateRating": {"ratingValue": 4.8, "ratingCount": 12},
      "brand": {"name": "AcmeOne"}
    },
    {"@type": "Person", "name": "Bob", "jobTitle": "CEO"},
    {"@type": "Person", "name": "Eve"}
  ]
}`

const productDoc = `{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Widget",
  "brand": "Acme",
  "gtin13": "4006381333931",
  "image": ["https://x.test/1.png", "https://x.test/2.png"],
  "manufacturer": {"name": "Acme Works"},
  "weight": {"value": 1.5, "unitCode": "KGM"},
  "offers": {"@type": "Offer", "lowPrice": "9.99", "priceCurrency": "EUR", "availability": "https://schema.org/InStock"},
  "aggregateRating": {"ratingValue": 4.2, "ratingCount": 7}
}`

const articleGraphDoc = `{
  "@context": "https://schema.org",
  "@graph": [
    {
      "@type": "Article",
      "headline": "Why BI",
      "keywords": ["bi", "analytics"],
      "datePublished": "2026-01-10",
      "mainEntityOfPage": {"@id": "https://x.test/blog/bi"},
      "author": {"@type": "Person", "name": "Ann", "sameAs": ["https://x.test/in/ann"]},
      "publisher": {
        "@type": "Organization", "name": "Acme",
        "logo": {"url": "https://x.test/logo.png"},
        "contactPoint": {"telephone": "+1-555", "contactType": "Sales", "areaServed": ["US"]},
        "address": {"addressCountry": "US"}
      }
    },
    {"@type": "Person", "name": "Carl", "email": "carl@x.test"}
  ]
}`

const serviceDoc = `{
  "@context": "https://schema.org",
  "@type": "Service",
  "name": "Managed BI",
  "description": "Dashboards as a service",
  "provider": {
    "@type": "Organization", "name": "Acme", "logo": "https://x.test/logo.png",
    "contactPoint": [{"telephone": "+1-555", "contactType": "sales"}, {"email": "ops@x.test"}]
  },
  "areaServed": ["US", "UK"],
  "serviceType": "Consulting",
  "offers": {"description": "Monthly plans"},
  "url": "https://x.test/services/bi"
}`

const recipeDoc = `{"@type": "Recipe", "name": "Soup", "description": "Hot soup"}`
