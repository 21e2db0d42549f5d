// scripts/gen-sample.go - Sample batch file generator for manual pipeline testing
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"wisefido-fitness-analyzer/internal/models"

	"github.com/xuri/excelize/v2"
)

var sampleRecords = []models.UserRecord{
	{UserID: "U41", CurrentSteps: 7100, HeartRate: 75, AmbientTemperature: 20, EnvironmentalIndex: 80, ActivityIntensityFactor: 1.1},
	{UserID: "U42", CurrentSteps: 8200, HeartRate: 80, AmbientTemperature: 21, EnvironmentalIndex: 85, ActivityIntensityFactor: 1.2},
	{UserID: "U43", CurrentSteps: 9000, HeartRate: 90, AmbientTemperature: 19, EnvironmentalIndex: 70, ActivityIntensityFactor: 1.0},
	{UserID: "U44", CurrentSteps: 10000, HeartRate: 95, AmbientTemperature: 18, EnvironmentalIndex: 90, ActivityIntensityFactor: 1.3},
	{UserID: "U45", CurrentSteps: 7500, HeartRate: 65, AmbientTemperature: 22, EnvironmentalIndex: 75, ActivityIntensityFactor: 1.1},
	{UserID: "U46", CurrentSteps: 8000, HeartRate: 70, AmbientTemperature: 20, EnvironmentalIndex: 60, ActivityIntensityFactor: 1.2},
	{UserID: "U47", CurrentSteps: 9500, HeartRate: 85, AmbientTemperature: 23, EnvironmentalIndex: 80, ActivityIntensityFactor: 1.0},
	{UserID: "U48", CurrentSteps: 8700, HeartRate: 78, AmbientTemperature: 21, EnvironmentalIndex: 88, ActivityIntensityFactor: 1.2},
	{UserID: "U49", CurrentSteps: 9100, HeartRate: 92, AmbientTemperature: 24, EnvironmentalIndex: 77, ActivityIntensityFactor: 1.1},
	{UserID: "U50", CurrentSteps: 9800, HeartRate: 88, AmbientTemperature: 19, EnvironmentalIndex: 82, ActivityIntensityFactor: 1.0},
}

func main() {
	format := "csv"
	if len(os.Args) > 1 {
		format = os.Args[1]
	}
	path := "sample-batch." + format
	if len(os.Args) > 2 {
		path = os.Args[2]
	}

	var err error
	switch format {
	case "csv":
		err = writeCSV(path)
	case "json":
		err = writeJSON(path)
	case "xlsx":
		err = writeXLSX(path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q (expected csv, json or xlsx)\n", format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing sample batch: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote %d sample record(s) to %s\n", len(sampleRecords), path)
}

func writeCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.RequiredFields()); err != nil {
		return err
	}
	for _, rec := range sampleRecords {
		row := []string{
			rec.UserID,
			strconv.Itoa(rec.CurrentSteps),
			strconv.Itoa(rec.HeartRate),
			strconv.FormatFloat(rec.AmbientTemperature, 'f', -1, 64),
			strconv.FormatFloat(rec.EnvironmentalIndex, 'f', -1, 64),
			strconv.FormatFloat(rec.ActivityIntensityFactor, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON(path string) error {
	data, err := json.MarshalIndent(map[string]any{"users": sampleRecords}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writeXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range models.RequiredFields() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, rec := range sampleRecords {
		values := []any{
			rec.UserID,
			rec.CurrentSteps,
			rec.HeartRate,
			rec.AmbientTemperature,
			rec.EnvironmentalIndex,
			rec.ActivityIntensityFactor,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
