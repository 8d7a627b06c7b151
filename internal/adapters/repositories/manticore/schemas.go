package manticore

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	TableAddresses = "addresses"
	TableSynonyms  = "address_synonyms"
)

// column описывает одно поле таблицы адресов
type column struct {
	name string
	typ  string
}

// partPrefixes - префиксы полей уровней адреса в порядке от субъекта к комнате
var partPrefixes = []string{"region", "area", "city", "settlement", "street", "house", "flat", "room"}

var summaryColumns = []column{
	{"fias_id", "string attribute indexed"},
	{"address_level", "int"},
	{"fias_level", "int"},
	{"fias_hierarchy_id", "bigint"},
	{"kladr_id", "string"},
	{"okato", "string"},
	{"oktmo", "string"},
	{"postal_code", "string attribute indexed"},
	{"full_text", "text"},
	{"synonyms", "text"},
	{"renaming", "text"},
	{"updated_at", "timestamp"},
}

func partColumns(prefix string) []column {
	return []column{
		{prefix + "_fias_id", "string"},
		{prefix + "_kladr_id", "string"},
		{prefix + "_name", "string"},
		{prefix + "_type", "string"},
		{prefix + "_type_full", "string"},
		{prefix + "_type_position", "int"},
		{prefix + "_renaming", "string"},
	}
}

func blockColumns(slot int) []column {
	prefix := fmt.Sprintf("house_block%d", slot)
	return []column{
		{prefix + "_number", "string"},
		{prefix + "_type", "string"},
		{prefix + "_type_full", "string"},
	}
}

// addressColumns возвращает полную схему таблицы адресов
func addressColumns() []column {
	cols := append([]column{}, summaryColumns...)
	for _, prefix := range partPrefixes {
		cols = append(cols, partColumns(prefix)...)
		if prefix == "house" {
			cols = append(cols, blockColumns(1)...)
			cols = append(cols, blockColumns(2)...)
		}
	}
	return cols
}

// AddressExportColumns - колонки выгрузки адресов, id документа первым
var AddressExportColumns = func() []string {
	names := []string{"id"}
	for _, col := range addressColumns() {
		if col.name == "updated_at" {
			continue
		}
		names = append(names, col.name)
	}
	return names
}()

func createAddressesSQL() string {
	cols := addressColumns()
	defs := make([]string, 0, len(cols))
	for _, col := range cols {
		defs = append(defs, fmt.Sprintf("        %s %s", col.name, col.typ))
	}

	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s
    )
    morphology='lemmatize_ru_all'
    min_stemming_len='4'
    index_exact_words='1'
    min_infix_len='3'
    expand_keywords='1'`, TableAddresses, strings.Join(defs, ",\n"))
}

var createSynonymsSQL = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        fias_id string attribute indexed,
        synonym text
    )
    morphology='lemmatize_ru_all'
    min_infix_len='2'`, TableSynonyms)

// CreateTablesSQL returns the DDL of every table the addresser owns.
func CreateTablesSQL() []string {
	return []string{createAddressesSQL(), createSynonymsSQL}
}

// InitSchema создает таблицы если они не существуют
func (c *ManticoreClient) InitSchema(ctx context.Context) error {
	for _, sql := range CreateTablesSQL() {
		if _, err := c.execSQL(ctx, sql); err != nil {
			return err
		}
	}
	log.Printf("Schema ready: %s, %s", TableAddresses, TableSynonyms)
	return nil
}
