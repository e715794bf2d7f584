// Package report renders batch results as a console table.
package report
