package sheet

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\ufeff 과목 ,대카테고리,소카테고리,숫소,구분,숫구,개념,개념이미지,문제,숫문,문제이미지,정답,출제년도,개념빈출,pk,fpk\n" +
	"건축계획,주거,단독주택,1.0,배치,1,\"- 남향\n- 동지 기준\",,문제1,1,,답1,2020,3,A-1-1-1,\n" +
	"건축계획,주거,단독주택,,,,,,문제2,2,,답2,,abc,,\n" +
	"\n" +
	"건축시공,공정,,2,구분2,,개념2,,,,,,,4.9,B-2,\n"

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV), DefaultColumns(), "test.csv")
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Empty(t, table.MissingColumns)
	assert.Equal(t, "과목", table.Columns[0], "header must be trimmed and BOM stripped")

	first := table.Rows[0]
	assert.Equal(t, "건축계획", first.Subject)
	assert.Equal(t, "1.0", first.SubNumber)
	assert.Equal(t, "- 남향\n- 동지 기준", first.Concept)
	assert.Equal(t, 3, first.Frequency)
	assert.Equal(t, "A-1-1", first.GroupID)

	second := table.Rows[1]
	assert.Equal(t, 0, second.Frequency, "non-numeric frequency coerces to 0")
	assert.Equal(t, "A-1-1", second.GroupID, "rows without key inherit previous group")
	assert.Equal(t, "", second.Label)

	third := table.Rows[2]
	assert.Equal(t, 4, third.Frequency, "fractional frequency truncates")
	assert.Equal(t, "B-2", third.GroupID)
	assert.Equal(t, 2, third.Index)
}

func TestParseCSVMissingColumns(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("개념,pk\n본문,X-1-2\nnan,\n"), DefaultColumns(), "short.csv")
	require.NoError(t, err)

	assert.Contains(t, table.MissingColumns, "과목")
	assert.NotContains(t, table.MissingColumns, "개념")
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0].Subject)
	assert.Equal(t, "", table.Rows[1].Concept, "nan cells become empty")
}

func TestParseCSVShortRowsArePadded(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("과목,개념,정답\n계획\n"), DefaultColumns(), "ragged.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "계획", table.Rows[0].Subject)
	assert.Equal(t, "", table.Rows[0].Answer)
}

func TestParseEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), DefaultColumns(), "empty.csv")
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), "ods", DefaultColumns(), "x.ods")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]interface{}{"과목", "개념", "개념빈출", "pk"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]interface{}{"건축구조", "하중", 5, "S-1-1-1"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A4", &[]interface{}{"건축구조", "응력", "", ""}))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	table, err := Parse(buf.Bytes(), FormatXLSX, DefaultColumns(), "test.xlsx")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2, "blank spreadsheet rows are skipped")
	assert.Equal(t, 5, table.Rows[0].Frequency)
	assert.Equal(t, "S-1-1", table.Rows[1].GroupID)
	assert.Equal(t, "응력", table.Rows[1].Concept)
}

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, 0, ParseFrequency(""))
	assert.Equal(t, 0, ParseFrequency("many"))
	assert.Equal(t, 0, ParseFrequency("NaN"))
	assert.Equal(t, 7, ParseFrequency(" 7 "))
	assert.Equal(t, 2, ParseFrequency("2.99"))
	assert.Equal(t, 3, ParseFrequency("3.7"))
	assert.Equal(t, math.MaxInt, ParseFrequency("1e20"))
	assert.Equal(t, math.MinInt, ParseFrequency("-1e20"))
}
