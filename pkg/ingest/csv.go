// Package ingest parses the utility's hourly usage CSV export into a
// validated UsageSeries. The export carries two disclaimer lines before
// the header, sometimes a UTF-8 BOM, and occasional blank or junk rows;
// all of that is tolerated here so the core never sees raw input.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/types"
)

// hourLayouts are the timestamp formats seen in exports. Parsed as local
// civil time: the export has no zone and the tariff is evaluated on wall
// clock hours.
var hourLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"01/02/2006 15:04",
	"01/02/2006 03:04 PM",
	"2006-01-02 15:04:05",
}

// ReadCSV parses an hourly usage export into a UsageSeries. Rows with a
// missing or unparsable kWh value are skipped with a warning, matching
// how the utility's own portal renders them. Duplicate timestamps are an
// error; gaps are logged but allowed.
func ReadCSV(ctx context.Context, r io.Reader) (types.UsageSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colMap := make(map[string]int)
	var series types.UsageSeries

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// disclaimer rows are not valid CSV rows; skip them
			log.Ctx(ctx).DebugContext(ctx, "skipping unparsable csv row", slog.Any("error", err))
			continue
		}
		if len(record) == 0 {
			continue
		}

		// Look for the header row
		if len(colMap) == 0 {
			first := strings.TrimPrefix(strings.TrimSpace(record[0]), "\uFEFF")
			if strings.EqualFold(first, "hour") {
				record[0] = first
				for i, col := range record {
					colMap[strings.ToLower(strings.TrimSpace(col))] = i
				}
				if _, ok := colMap["kwh"]; !ok {
					return nil, fmt.Errorf("%w: csv missing kWh column", types.ErrInvalidUsage)
				}
			}
			continue
		}

		hourIdx := colMap["hour"]
		kwhIdx := colMap["kwh"]
		if len(record) <= max(hourIdx, kwhIdx) {
			continue
		}

		ts, err := parseHour(record[hourIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", types.ErrInvalidUsage, record[hourIdx], err)
		}

		kwhStr := strings.TrimSpace(record[kwhIdx])
		if kwhStr == "" {
			log.Ctx(ctx).WarnContext(ctx, "skipping row with missing kWh", slog.Time("hour", ts))
			continue
		}
		kwh, err := strconv.ParseFloat(kwhStr, 64)
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "skipping row with unparsable kWh", slog.Time("hour", ts), slog.String("value", kwhStr))
			continue
		}
		if kwh < 0 {
			return nil, fmt.Errorf("%w: negative energy %.4f at %s", types.ErrInvalidUsage, kwh, ts)
		}

		sample := types.UsageSample{Timestamp: ts, KWH: kwh}
		if tempIdx, ok := colMap["temp"]; ok && tempIdx < len(record) {
			if temp, err := strconv.ParseFloat(strings.TrimSpace(record[tempIdx]), 64); err == nil {
				sample.TempF = &temp
			}
		}
		series = append(series, sample)
	}

	if len(colMap) == 0 {
		return nil, fmt.Errorf("%w: no header row found (expected Hour,kWh,Temp)", types.ErrInvalidUsage)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in csv", types.ErrInsufficientData)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp.Equal(series[i-1].Timestamp) {
			return nil, fmt.Errorf("%w: duplicate timestamp %s", types.ErrInvalidUsage, series[i].Timestamp)
		}
	}

	if err := series.Validate(); err != nil {
		return nil, err
	}

	if gaps := series.Gaps(); len(gaps) > 0 {
		var missing int
		for _, g := range gaps {
			missing += g.MissingHours
		}
		log.Ctx(ctx).WarnContext(
			ctx,
			"usage series has gaps",
			slog.Int("gaps", len(gaps)),
			slog.Int("missingHours", missing),
		)
	}

	return series, nil
}

func parseHour(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range hourLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
