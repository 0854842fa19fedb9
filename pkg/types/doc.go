// Package types defines the field model, the stored schema records, the Store
// and Table interfaces, and the standard errors shared by every schemaboard
// package.
package types
