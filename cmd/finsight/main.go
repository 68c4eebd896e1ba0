package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"finsight/internal/config"
	"finsight/internal/fetcher"
	"finsight/internal/recorder"
	"finsight/internal/scheduler"
	"finsight/internal/updater"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Tee logs into the append-only log file
	if dir := filepath.Dir(cfg.Output.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("[WARN] create log dir: %v", err)
		}
	}
	if lf, err := os.OpenFile(cfg.Output.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
		log.Printf("[WARN] open log file: %v", err)
	} else {
		defer lf.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, lf))
	}
	log.Println("[INFO] finsight starting...")

	// Init fetcher
	var f fetcher.Fetcher
	if cfg.DataSource.BaseURL != "" {
		f = fetcher.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.RatePerSec)
	} else {
		f = fetcher.NewYahooFetcher(cfg.Proxy, cfg.DataSource.RatePerSec)
	}
	log.Printf("[INFO] data source: %s", f.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Printf("[WARN] create database dir: %v", err)
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	upd := updater.New(cfg.Companies, f, rec, cfg.Output.Dir)
	sched := scheduler.New(ctx, upd)

	// Apply schedule presets from config
	if cfg.Schedule.DailyTime != "" {
		if err := sched.ScheduleDaily(cfg.Schedule.DailyTime); err != nil {
			log.Fatalf("[FATAL] preset daily schedule: %v", err)
		}
	}
	if cfg.Schedule.WeeklyDay != "" && cfg.Schedule.WeeklyTime != "" {
		if err := sched.ScheduleWeekly(cfg.Schedule.WeeklyDay, cfg.Schedule.WeeklyTime); err != nil {
			log.Fatalf("[FATAL] preset weekly schedule: %v", err)
		}
	}

	runMenu(ctx, upd, sched)
	log.Println("[INFO] finsight stopped")
}

func runMenu(ctx context.Context, upd *updater.Updater, sched *scheduler.Scheduler) {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("finsight data update tool")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("1. Update all companies now")
	fmt.Println("2. Update one company")
	fmt.Println("3. Set daily schedule")
	fmt.Println("4. Set weekly schedule")
	fmt.Println("5. Run scheduler")
	fmt.Println("6. Exit")
	fmt.Println(strings.Repeat("=", 40))

	for {
		fmt.Print("\nSelect (1-6): ")
		if !in.Scan() {
			return
		}
		switch strings.TrimSpace(in.Text()) {
		case "1":
			if err := upd.UpdateAll(ctx); err != nil {
				fmt.Printf("batch failed: %v\n", err)
			}

		case "2":
			var symbols []string
			for _, c := range upd.Companies() {
				symbols = append(symbols, c.Symbol)
			}
			fmt.Printf("Configured: %s\n", strings.Join(symbols, ", "))
			fmt.Print("Symbol (e.g. PDD): ")
			if !in.Scan() {
				return
			}
			symbol := strings.ToUpper(strings.TrimSpace(in.Text()))
			if err := upd.UpdateSymbol(ctx, symbol); err != nil {
				fmt.Printf("update failed: %v\n", err)
			}

		case "3":
			fmt.Print("Daily update time (HH:MM, default 09:30): ")
			if !in.Scan() {
				return
			}
			timeOfDay := strings.TrimSpace(in.Text())
			if timeOfDay == "" {
				timeOfDay = "09:30"
			}
			if err := sched.ScheduleDaily(timeOfDay); err != nil {
				fmt.Printf("schedule failed: %v\n", err)
			}

		case "4":
			fmt.Print("Weekday (monday..sunday, default monday): ")
			if !in.Scan() {
				return
			}
			day := strings.TrimSpace(in.Text())
			if day == "" {
				day = "monday"
			}
			fmt.Print("Weekly update time (HH:MM, default 09:00): ")
			if !in.Scan() {
				return
			}
			timeOfDay := strings.TrimSpace(in.Text())
			if timeOfDay == "" {
				timeOfDay = "09:00"
			}
			if err := sched.ScheduleWeekly(day, timeOfDay); err != nil {
				fmt.Printf("schedule failed: %v\n", err)
			}

		case "5":
			if sched.Entries() == 0 {
				fmt.Println("no triggers registered, set a schedule first")
				continue
			}
			for _, t := range sched.NextRuns() {
				fmt.Printf("next run: %s\n", t.Format("2006-01-02 15:04:05"))
			}
			fmt.Println("scheduler running, press Ctrl+C to stop")
			runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			sched.Run(runCtx)
			stop()

		case "6", "":
			return

		default:
			fmt.Println("invalid choice")
		}
	}
}
