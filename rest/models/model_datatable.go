package models

// DataTableRequest is the DataTables server-side request as sent by the client, either in the query string,
// a form body or a JSON body. Loosely typed numbers are decoded with mapstructure's weak typing.
type DataTableRequest struct {
	Draw   interface{} `mapstructure:"draw" json:"draw"`
	Start  interface{} `mapstructure:"start" json:"start"`
	Length interface{} `mapstructure:"length" json:"length"`

	Search  Search        `mapstructure:"search" json:"search"`
	Order   []Order       `mapstructure:"order" json:"order" validate:"dive"`
	Columns []ColumnInput `mapstructure:"columns" json:"columns" validate:"dive"`
}

type Search struct {
	Value string `mapstructure:"value" json:"value"`

	// Regex is accepted for compatibility, matching is always by substring
	Regex bool `mapstructure:"regex" json:"regex"`
}

type Order struct {
	Column int    `mapstructure:"column" json:"column" validate:"min=0"`
	Dir    string `mapstructure:"dir" json:"dir" validate:"omitempty,oneof=asc desc ASC DESC"`
}

type ColumnInput struct {
	Data       string `mapstructure:"data" json:"data"`
	Name       string `mapstructure:"name" json:"name"`
	Searchable bool   `mapstructure:"searchable" json:"searchable"`
	Orderable  bool   `mapstructure:"orderable" json:"orderable"`
	Search     Search `mapstructure:"search" json:"search"`
}
