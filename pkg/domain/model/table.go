package model

// Table is a flat tabular export of records
type Table struct {
	Header []string
	Rows   [][]string
}
