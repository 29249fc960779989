package power

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"

	"paradecast/internal/models"
)

//go:embed data/fallback_montevideo.csv
var fallbackFS embed.FS

// FallbackRecords loads the embedded Montevideo reference dataset filtered
// to the year range. The dataset carries sampled daily records per month
// over 2004-2023.
func FallbackRecords(startYear, endYear int) ([]models.DailyRecord, error) {
	f, err := fallbackFS.Open("data/fallback_montevideo.csv")
	if err != nil {
		return nil, fmt.Errorf("open fallback data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read fallback data: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("fallback dataset is empty")
	}

	var records []models.DailyRecord
	for _, row := range rows[1:] { // skip header
		if len(row) != 6 {
			continue
		}
		year, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		if year < startYear || year > endYear {
			continue
		}
		month, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		tempMax, err1 := strconv.ParseFloat(row[2], 64)
		tempMin, err2 := strconv.ParseFloat(row[3], 64)
		tempAvg, err3 := strconv.ParseFloat(row[4], 64)
		precip, err4 := strconv.ParseFloat(row[5], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		records = append(records, models.DailyRecord{
			Year:    year,
			Month:   month,
			TempMax: tempMax,
			TempMin: tempMin,
			TempAvg: tempAvg,
			Precip:  precip,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no fallback records in range %d-%d", startYear, endYear)
	}
	return records, nil
}
