// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Known CSV columns. Header names are trimmed before comparison.
const (
	colDestination          = "Destination"
	colRegion               = "Region"
	colCountry              = "Country"
	colCategory             = "Category"
	colLatitude             = "Latitude"
	colLongitude            = "Longitude"
	colAnnualTourists       = "Approximate Annual Tourists"
	colCurrency             = "Currency"
	colMajorityReligion     = "Majority Religion"
	colFamousFoods          = "Famous Foods"
	colLanguage             = "Language"
	colBestTimeToVisit      = "Best Time to Visit"
	colCostOfLiving         = "Cost of Living"
	colSafety               = "Safety"
	colCulturalSignificance = "Cultural Significance"
	colDescription          = "Description"
)

// ErrNoHeader is returned for an empty CSV input.
var ErrNoHeader = errors.New("catalog: csv has no header row")

// LoadFile parses the destinations CSV at path.
func LoadFile(path string) ([]models.Destination, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses destination rows from r. Each row receives CustomID equal to
// its 1-based position after the header. Columns without a dedicated field
// are kept in Attributes.
func Load(r io.Reader) ([]models.Destination, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []models.Destination
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		d := fromRecord(header, record)
		d.CustomID = len(out) + 1
		out = append(out, d)
	}
	return out, nil
}

func fromRecord(header, record []string) models.Destination {
	var d models.Destination
	for i, name := range header {
		if i >= len(record) {
			break
		}
		val := strings.TrimSpace(record[i])
		switch name {
		case colDestination:
			d.Name = val
		case colRegion:
			d.Region = val
		case colCountry:
			d.Country = val
		case colCategory:
			d.Category = val
		case colLatitude:
			d.Latitude = parseCoordinate(name, val)
		case colLongitude:
			d.Longitude = parseCoordinate(name, val)
		case colAnnualTourists:
			d.AnnualTourists = val
		case colCurrency:
			d.Currency = val
		case colMajorityReligion:
			d.MajorityReligion = val
		case colFamousFoods:
			d.FamousFoods = val
		case colLanguage:
			d.Language = val
		case colBestTimeToVisit:
			d.BestTimeToVisit = val
		case colCostOfLiving:
			d.CostOfLiving = val
		case colSafety:
			d.Safety = val
		case colCulturalSignificance:
			d.CulturalSignificance = val
		case colDescription:
			d.Description = val
		default:
			if name == "" {
				continue
			}
			if d.Attributes == nil {
				d.Attributes = make(map[string]string)
			}
			d.Attributes[name] = val
		}
	}
	return d
}

func parseCoordinate(column, val string) float64 {
	if val == "" {
		return 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logging.Warn().Str("column", column).Str("value", val).Msg("Unparsable coordinate, using 0")
		return 0
	}
	return f
}
