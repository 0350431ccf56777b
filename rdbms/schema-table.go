package rdbms

import (
	"fmt"
	"path"

	"github.com/relloyd/deltapipe/helper"
)

// TableName is a three part Unity Catalog name.
type TableName struct {
	Catalog string `errorTxt:"catalog" mandatory:"yes"`
	Schema  string `errorTxt:"schema" mandatory:"yes"`
	Table   string `errorTxt:"table" mandatory:"yes"`
}

func NewTableName(catalog string, schema string, table string) TableName {
	return TableName{Catalog: catalog, Schema: schema, Table: table}
}

// Quoted returns the name with each part quoted for use in SQL.
func (t TableName) Quoted() string {
	return fmt.Sprintf("%v.%v.%v", helper.QuoteIdentifier(t.Catalog), helper.QuoteIdentifier(t.Schema), helper.QuoteIdentifier(t.Table))
}

// VolumePath returns the path of fileName in the staging folder of volume, which lives in the same catalog and schema
// as the table, i.e. /Volumes/<catalog>/<schema>/<volume>/<folder>/<fileName>.
func (t TableName) VolumePath(volume string, folder string, fileName string) string {
	return path.Join("/Volumes", t.Catalog, t.Schema, volume, folder, fileName)
}

func (t TableName) String() string {
	return fmt.Sprintf("%v.%v.%v", t.Catalog, t.Schema, t.Table)
}
