package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"estate-explorer/models"
	"estate-explorer/utils"
)

const largestCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarizes records. Trade statistics only consider trades with a
// positive amount.
func (s *InsightService) Generate(records []models.TransactionRecord) *models.InsightReport {
	report := &models.InsightReport{
		RecordsByRegion: make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalRecords = len(records)

	var trades []*models.TransactionRecord
	var sized []*models.TransactionRecord

	for i := range records {
		r := &records[i]
		switch r.DealType {
		case models.DealTrade:
			report.TradeRecords++
			if r.TradeAmount != nil && *r.TradeAmount > 0 {
				trades = append(trades, r)
			}
		case models.DealRent:
			report.RentRecords++
		}
		if r.AreaSqm != nil {
			sized = append(sized, r)
		}
		if r.RegionName != "" {
			report.RecordsByRegion[r.RegionName]++
		}
	}

	if len(trades) > 0 {
		report.MinTrade = *trades[0].TradeAmount
		report.MaxTrade = *trades[0].TradeAmount
		report.MostExpensive = trades[0]
		var total float64
		for _, r := range trades {
			amount := *r.TradeAmount
			total += amount
			if amount < report.MinTrade {
				report.MinTrade = amount
			}
			if amount > report.MaxTrade {
				report.MaxTrade = amount
				report.MostExpensive = r
			}
		}
		report.AverageTrade = round2(total / float64(len(trades)))
	}

	sort.SliceStable(sized, func(i, j int) bool {
		return *sized[i].AreaSqm > *sized[j].AreaSqm
	})
	if len(sized) > largestCount {
		report.Largest = sized[:largestCount]
	} else {
		report.Largest = sized
	}

	s.logger.Debug("[insights] %d records, %d trades priced", report.TotalRecords, len(trades))
	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 TRANSACTION INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total records : \033[1m%s\033[0m\n", humanize.Comma(int64(r.TotalRecords)))
	fmt.Printf("  Trades        : \033[1m%s\033[0m\n", humanize.Comma(int64(r.TradeRecords)))
	fmt.Printf("  Rents         : \033[1m%s\033[0m\n", humanize.Comma(int64(r.RentRecords)))
	fmt.Println()

	fmt.Printf("\033[1;33m  Trade Amounts\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageTrade > 0 {
		fmt.Printf("  Average : \033[1;32m%s\033[0m\n", formatManwon(r.AverageTrade))
		fmt.Printf("  Minimum : \033[1;32m%s\033[0m\n", formatManwon(r.MinTrade))
		fmt.Printf("  Maximum : \033[1;32m%s\033[0m\n", formatManwon(r.MaxTrade))
	} else {
		fmt.Printf("  No trade data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Trade\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(FormatName(*r.MostExpensive), 50))
		fmt.Printf("  Region : %s %s\n", r.MostExpensive.RegionName, r.MostExpensive.Neighborhood)
		fmt.Printf("  Date   : %s\n", r.MostExpensive.DateStr)
		fmt.Printf("  Price  : \033[1;31m%s\033[0m\n", FormatTradePrice(*r.MostExpensive))
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top %d Largest Units\033[0m\n", largestCount)
	fmt.Printf("  %s\n", thin)
	if len(r.Largest) == 0 {
		fmt.Printf("  No area data found\n")
	} else {
		for i, rec := range r.Largest {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%s㎡\033[0m\n",
				i+1, truncate(FormatName(*rec), 38), FormatArea(rec.AreaSqm, models.AreaUnitM2))
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Records by District\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RecordsByRegion) == 0 {
		fmt.Printf("  No region data\n")
	} else {
		type regionCount struct {
			name  string
			count int
		}
		var regions []regionCount
		for name, cnt := range r.RecordsByRegion {
			regions = append(regions, regionCount{name, cnt})
		}
		sort.Slice(regions, func(i, j int) bool {
			if regions[i].count != regions[j].count {
				return regions[i].count > regions[j].count
			}
			return regions[i].name < regions[j].name
		})
		max := regions[0].count
		for _, rc := range regions {
			bar := strings.Repeat("█", barWidth(rc.count, max))
			fmt.Printf("  %-12s %s (%s)\n", rc.name, bar, humanize.Comma(int64(rc.count)))
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// barWidth scales count to at most 30 cells.
func barWidth(count, max int) int {
	if max <= 30 {
		return count
	}
	w := count * 30 / max
	if w < 1 {
		w = 1
	}
	return w
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
