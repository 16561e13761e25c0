// Package pricewatch provides a product-price monitoring pipeline.
// Given a page URL and a hint (an HTML id or class plus a known product
// title), it fetches the page, shortlists candidate elements, disambiguates
// them by fuzzy title matching, and extracts a currency-tagged price.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package pricewatch
