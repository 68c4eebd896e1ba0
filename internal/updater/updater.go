package updater

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/calculator"
	"finsight/internal/exporter"
	"finsight/internal/fetcher"
	"finsight/internal/model"
	"finsight/internal/recorder"
)

// Updater runs batch snapshot updates over a configured company list.
// The list is read-only after construction.
type Updater struct {
	companies []model.Company
	fetcher   fetcher.Fetcher
	recorder  recorder.Recorder
	outDir    string
}

// New creates an Updater writing snapshot files into outDir.
func New(companies []model.Company, f fetcher.Fetcher, rec recorder.Recorder, outDir string) *Updater {
	return &Updater{
		companies: companies,
		fetcher:   f,
		recorder:  rec,
		outDir:    outDir,
	}
}

// Companies returns the configured company list.
func (u *Updater) Companies() []model.Company { return u.companies }

// UpdateAll updates every configured company in declaration order. One
// company's failure is logged and recorded but never aborts the batch.
func (u *Updater) UpdateAll(ctx context.Context) error {
	started := time.Now()
	log.Printf("[INFO] batch update started, %d companies", len(u.companies))

	succeeded := 0
	for _, c := range u.companies {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch interrupted: %w", err)
		}
		if err := u.UpdateOne(ctx, c); err != nil {
			log.Printf("[ERROR] update %s(%s): %v", c.Name, c.Symbol, err)
			continue
		}
		succeeded++
	}

	run := &recorder.BatchRun{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Total:      len(u.companies),
		Succeeded:  succeeded,
		Failed:     len(u.companies) - succeeded,
	}
	if err := u.recorder.RecordBatch(run); err != nil {
		log.Printf("[ERROR] record batch: %v", err)
	}
	log.Printf("[INFO] batch update finished: %d/%d succeeded in %s",
		succeeded, run.Total, run.FinishedAt.Sub(started).Round(time.Millisecond))
	return nil
}

// UpdateSymbol updates the configured company with the given symbol.
func (u *Updater) UpdateSymbol(ctx context.Context, symbol string) error {
	for _, c := range u.companies {
		if c.Symbol == symbol {
			return u.UpdateOne(ctx, c)
		}
	}
	return fmt.Errorf("symbol %s is not in the configured company list", symbol)
}

// UpdateOne fetches one company's data, computes ratios, and writes one JSON
// and one Excel snapshot. Missing financials produce a partial snapshot;
// a failed quote fetch fails the company.
func (u *Updater) UpdateOne(ctx context.Context, c model.Company) error {
	log.Printf("[INFO] updating %s(%s)", c.Name, c.Symbol)

	info, err := u.fetcher.StockInfo(ctx, c.Symbol)
	if err != nil {
		u.recordCompany(c, "FETCH_ERROR", err, "", "")
		return fmt.Errorf("fetch stock info: %w", err)
	}

	snap := &model.Snapshot{StockInfo: info}

	fin, err := u.fetcher.FinancialData(ctx, c.Symbol)
	if err != nil {
		// Quote data alone is still a useful snapshot.
		log.Printf("[WARN] financials unavailable for %s: %v", c.Symbol, err)
	} else {
		snap.FinancialData = fin
		ratios := calculator.CalculateRatios(fin)
		snap.FinancialRatios = &ratios
	}

	if err := os.MkdirAll(u.outDir, 0755); err != nil {
		u.recordCompany(c, "WRITE_ERROR", err, "", "")
		return fmt.Errorf("create output dir: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(u.outDir, fmt.Sprintf("%s_data_%s.json", c.Symbol, ts))
	excelPath := filepath.Join(u.outDir, fmt.Sprintf("%s_data_%s.xlsx", c.Symbol, ts))

	if err := exporter.WriteJSON(jsonPath, snap); err != nil {
		u.recordCompany(c, "WRITE_ERROR", err, "", "")
		return fmt.Errorf("write json: %w", err)
	}
	if err := exporter.WriteExcel(excelPath, snap); err != nil {
		u.recordCompany(c, "WRITE_ERROR", err, jsonPath, "")
		return fmt.Errorf("write excel: %w", err)
	}

	u.recordCompany(c, "OK", nil, jsonPath, excelPath)
	log.Printf("[INFO] %s(%s) updated: %s, %s", c.Name, c.Symbol, jsonPath, excelPath)
	return nil
}

func (u *Updater) recordCompany(c model.Company, status string, cause error, jsonPath, excelPath string) {
	upd := &recorder.CompanyUpdate{
		Symbol:    c.Symbol,
		Name:      c.Name,
		Status:    status,
		JSONPath:  jsonPath,
		ExcelPath: excelPath,
	}
	if cause != nil {
		upd.Error = cause.Error()
	}
	if err := u.recorder.RecordCompany(upd); err != nil {
		log.Printf("[ERROR] record company update: %v", err)
	}
}
