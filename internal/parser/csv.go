package parser

import (
	"fmt"
	"strings"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// CSVPlugin extracts one row entity per data line of a CSV or TSV file. The
// first non-blank line is the header; each row's metadata maps header names
// to cell values. Quoting follows RFC 4180 within a line.
//
// encoding/csv is deliberately not used here: it folds multi-line quoted
// records and drops the line positions each row entity needs.
type CSVPlugin struct{}

// NewCSVPlugin creates the CSV/TSV plugin.
func NewCSVPlugin() *CSVPlugin {
	return &CSVPlugin{}
}

func (p *CSVPlugin) ID() string { return "csv" }

func (p *CSVPlugin) Extensions() []string { return []string{".csv", ".tsv"} }

func (p *CSVPlugin) ExtractEntities(content, filePath string) []model.Entity {
	separator := byte(',')
	if strings.HasSuffix(strings.ToLower(filePath), ".tsv") {
		separator = '\t'
	}

	var entities []model.Entity
	var headers []string
	rowNum := 0

	for lineIdx, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := parseCSVLine(line, separator)
		if headers == nil {
			headers = cells
			continue
		}

		rowNum++
		rowID := fmt.Sprintf("row_%d", rowNum)
		if len(cells) > 0 && cells[0] != "" {
			rowID = cells[0]
		}
		name := fmt.Sprintf("row[%s]", rowID)

		metadata := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				metadata[header] = cells[i]
			} else {
				metadata[header] = ""
			}
		}

		entities = append(entities, model.Entity{
			ID:          model.BuildEntityID(filePath, "row", name, ""),
			FilePath:    filePath,
			EntityType:  "row",
			Name:        name,
			Content:     line,
			ContentHash: hashutil.ContentHash(strings.TrimSpace(line)),
			StartLine:   lineIdx + 1,
			EndLine:     lineIdx + 1,
			Metadata:    metadata,
		})
	}

	return entities
}

// parseCSVLine splits one line on the separator, honouring double-quote
// enclosure and "" as an escaped quote inside a quoted field. Cells are
// trimmed after unquoting.
func parseCSVLine(line string, separator byte) []string {
	var cells []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '"' && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++
		case inQuotes && ch == '"':
			inQuotes = false
		case !inQuotes && ch == '"':
			inQuotes = true
		case !inQuotes && ch == separator:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	cells = append(cells, strings.TrimSpace(current.String()))
	return cells
}
