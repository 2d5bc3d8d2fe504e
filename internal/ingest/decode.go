// Package ingest turns uploaded delimited-text files into tables.
//
// Uploads come from scanners and spreadsheets in the field: the delimiter
// varies, the encoding is UTF-8 or a Windows Latin-1 flavor, and one legacy
// export format ships seven headerless columns with the ground-truth label
// first. All of that is absorbed here so the pipeline only ever sees a Table.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateDelimiters in sniffing priority order.
var candidateDelimiters = []rune{';', ',', '\t', '|'}

// legacyColumns is the layout of the headerless seven-column export, with the
// ground-truth label in front. The extra column is ignored downstream.
var legacyColumns = []string{"is_genuine", "diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"}

// Decode parses raw upload bytes into a Table. The bytes are decoded as
// UTF-8 when valid, otherwise as Windows-1252; the delimiter is sniffed from
// the first line. Any failure is reported as a DecodeError.
func Decode(data []byte) (*model.Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, common.NewDecodeError(err)
	}

	text = strings.TrimLeft(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return nil, common.NewDecodeError(common.ErrEmptyUpload)
	}

	delim := sniffDelimiter(text)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, common.NewDecodeError(fmt.Errorf("%w: %v", common.ErrMalformedRecord, err))
	}
	if len(records) == 0 {
		return nil, common.NewDecodeError(common.ErrEmptyUpload)
	}

	if isLegacyHeaderless(records[0]) {
		return &model.Table{Columns: legacyColumns, Rows: records}, nil
	}

	return &model.Table{Columns: records[0], Rows: records[1:]}, nil
}

// decodeText returns the upload as a string, trying UTF-8 first and falling
// back to Windows-1252 when the bytes are not valid UTF-8.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("windows-1252 fallback failed: %w", err)
	}
	return string(decoded), nil
}

// sniffDelimiter picks the candidate delimiter occurring most often in the
// first line. Ties go to the earlier candidate; a line with no candidate at
// all falls back to semicolon, the common case for these exports.
func sniffDelimiter(text string) rune {
	line := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		line = text[:idx]
	}

	best := ';'
	bestCount := 0
	for _, d := range candidateDelimiters {
		count := strings.Count(line, string(d))
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

// isLegacyHeaderless reports whether the first record looks like data from
// the seven-column label-first export rather than a header row.
func isLegacyHeaderless(record []string) bool {
	if len(record) != len(legacyColumns) {
		return false
	}
	for _, cell := range record {
		if !looksNumericOrBool(cell) {
			return false
		}
	}
	return true
}

func looksNumericOrBool(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	switch strings.ToLower(cell) {
	case "true", "false":
		return true
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	return err == nil
}
