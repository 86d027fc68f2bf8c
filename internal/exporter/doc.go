// Package exporter writes metric snapshots to downloadable report formats:
// CSV for spreadsheets, XLSX workbooks, and a one-page PDF summary.
package exporter
