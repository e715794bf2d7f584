// Package fetcher downloads the latest installer artifact for a product
// and derives its version before a batch starts.
//
// Download and version probe are two sequential steps: the Firefox
// installer is a self-extracting archive that must be opened to read the
// bundled application.ini, and the Chrome MSI carries its version in the
// Property table. Either step failing is reported to the caller, which
// runs the batch in degraded mode instead of aborting.
package fetcher
