package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sampleCSV = `user_id,current_steps,heart_rate,ambient_temperature,environmental_index,activity_intensity_factor
U41,7100,75,20,80,1.1
U42,8200,80,21,85,1.2
`

func TestParse_CSV(t *testing.T) {
	p := New(zap.NewNop())

	records, err := p.Parse([]byte(sampleCSV), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].Row)
	assert.Equal(t, 2, records[1].Row)

	// CSV values stay strings until validation
	assert.Equal(t, "U41", records[0].Fields["user_id"])
	assert.Equal(t, "7100", records[0].Fields["current_steps"])
	assert.Equal(t, "1.2", records[1].Fields["activity_intensity_factor"])
	assert.Len(t, records[0].Fields, 6)
}

func TestParse_CSV_SkipsWrongWidthRows(t *testing.T) {
	p := New(zap.NewNop())

	input := "user_id,current_steps,heart_rate,ambient_temperature,environmental_index,activity_intensity_factor\n" +
		"U41,7100,75,20,80,1.1\n" +
		"U42,8200,80\n" + // short row, skipped
		"U43,9000,90,19,70,1.0\n"

	records, err := p.Parse([]byte(input), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// skipped row keeps its slot in the numbering
	assert.Equal(t, 1, records[0].Row)
	assert.Equal(t, 3, records[1].Row)
	assert.Equal(t, "U43", records[1].Fields["user_id"])
}

func TestParse_CSV_Empty(t *testing.T) {
	p := New(zap.NewNop())

	_, err := p.Parse([]byte(""), FormatCSV)

	var malformed *MalformedBatchError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, FormatCSV, malformed.Format)
}

func TestParse_JSON_UsersEnvelope(t *testing.T) {
	p := New(zap.NewNop())

	input := `{"users": [
		{"user_id": "U41", "current_steps": 7100, "heart_rate": 75, "ambient_temperature": 20, "environmental_index": 80, "activity_intensity_factor": 1.1},
		{"user_id": "U42", "current_steps": 8200, "heart_rate": 80, "ambient_temperature": 21, "environmental_index": 85, "activity_intensity_factor": 1.2}
	]}`

	records, err := p.Parse([]byte(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// JSON numbers decode as float64
	assert.Equal(t, "U41", records[0].Fields["user_id"])
	assert.Equal(t, float64(7100), records[0].Fields["current_steps"])
	assert.Equal(t, 2, records[1].Row)
}

func TestParse_JSON_SingleObject(t *testing.T) {
	p := New(zap.NewNop())

	input := `{"user_id": "U41", "current_steps": 7100, "heart_rate": 75, "ambient_temperature": 20, "environmental_index": 80, "activity_intensity_factor": 1.1}`

	records, err := p.Parse([]byte(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Row)
	assert.Equal(t, "U41", records[0].Fields["user_id"])
}

func TestParse_JSON_TopLevelArray(t *testing.T) {
	p := New(zap.NewNop())

	input := `[{"user_id": "U41"}, {"user_id": "U42"}]`

	records, err := p.Parse([]byte(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "U42", records[1].Fields["user_id"])
}

func TestParse_JSON_NullValuePreserved(t *testing.T) {
	p := New(zap.NewNop())

	input := `{"users": [{"user_id": "U41", "heart_rate": null}]}`

	records, err := p.Parse([]byte(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 1)

	val, ok := records[0].Fields["heart_rate"]
	assert.True(t, ok)
	assert.Nil(t, val)
}

func TestParse_JSON_Malformed(t *testing.T) {
	p := New(zap.NewNop())

	tests := []struct {
		name  string
		input string
	}{
		{"truncated object", `{"users": [`},
		{"users not an array", `{"users": 42}`},
		{"users entry not an object", `{"users": [1, 2]}`},
		{"truncated array", `[{"user_id": "U41"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.input), FormatJSON)

			var malformed *MalformedBatchError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, FormatJSON, malformed.Format)
		})
	}
}

func TestParse_AutoDetect(t *testing.T) {
	p := New(zap.NewNop())

	t.Run("JSON object", func(t *testing.T) {
		records, err := p.Parse([]byte(`  {"user_id": "U41"}`), FormatAuto)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("JSON array", func(t *testing.T) {
		records, err := p.Parse([]byte(`[{"user_id": "U41"}]`), FormatAuto)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("CSV", func(t *testing.T) {
		records, err := p.Parse([]byte(sampleCSV), FormatAuto)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("unrecognized input", func(t *testing.T) {
		_, err := p.Parse([]byte("just some text without structure"), FormatAuto)

		var malformed *MalformedBatchError
		require.ErrorAs(t, err, &malformed)
		assert.Contains(t, err.Error(), "unrecognized input format")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := p.Parse(nil, FormatAuto)
		var malformed *MalformedBatchError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestParse_CSV_WithBOM(t *testing.T) {
	p := New(zap.NewNop())

	input := append([]byte("\xef\xbb\xbf"), []byte(sampleCSV)...)

	records, err := p.Parse(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "U41", records[0].Fields["user_id"])
}

// xlsxBytes builds an in-memory workbook for parser tests.
func xlsxBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_XLSX(t *testing.T) {
	p := New(zap.NewNop())

	data := xlsxBytes(t, [][]string{
		{"user_id", "current_steps", "heart_rate", "ambient_temperature", "environmental_index", "activity_intensity_factor"},
		{"U41", "7100", "75", "20", "80", "1.1"},
		{"U42", "8200", "80", "21", "85"}, // trailing cell absent
	})

	records, err := p.Parse(data, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "U41", records[0].Fields["user_id"])
	assert.Equal(t, "7100", records[0].Fields["current_steps"])

	// absent trailing cell is delivered as empty string
	assert.Equal(t, "", records[1].Fields["activity_intensity_factor"])
}

func TestParse_XLSX_AutoDetectByMagic(t *testing.T) {
	p := New(zap.NewNop())

	data := xlsxBytes(t, [][]string{
		{"user_id", "current_steps", "heart_rate", "ambient_temperature", "environmental_index", "activity_intensity_factor"},
		{"U41", "7100", "75", "20", "80", "1.1"},
	})

	records, err := p.Parse(data, FormatAuto)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParse_XLSX_Garbage(t *testing.T) {
	p := New(zap.NewNop())

	_, err := p.Parse([]byte("PK\x03\x04 not really a workbook"), FormatXLSX)

	var malformed *MalformedBatchError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, FormatXLSX, malformed.Format)
}

func TestMalformedBatchError_Message(t *testing.T) {
	err := &MalformedBatchError{Format: FormatJSON, Reason: "invalid JSON object", Err: errors.New("unexpected end of JSON input")}
	assert.Equal(t, "malformed batch: invalid JSON object: unexpected end of JSON input", err.Error())

	bare := &MalformedBatchError{Format: FormatCSV, Reason: "missing header row"}
	assert.Equal(t, "malformed batch: missing header row", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestToRawRecords_RowNumbering(t *testing.T) {
	records := toRawRecords([]map[string]any{
		{"user_id": "a"},
		{"user_id": "b"},
		{"user_id": "c"},
	})

	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.Row)
	}
	assert.Equal(t, "b", records[1].Fields["user_id"])
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"auto", "csv", "json", "xlsx"} {
		format, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), format)
	}

	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, format)

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}
