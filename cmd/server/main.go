package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studiohq/config"
	"studiohq/internal/database"
	"studiohq/internal/router"
	"studiohq/pkg/cloudinary"
	"studiohq/pkg/email"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db, env("ADMIN_EMAIL", "admin@studiohq.local"), env("ADMIN_PASSWORD", "admin1234"))
	database.SeedCreditTypes(db)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	} else {
		log.Printf("cloudinary not configured, image uploads disabled")
	}

	var sender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	} else {
		log.Printf("RESEND_API_KEY not set, reminder emails will be logged only")
		sender = email.NewNoopSender()
	}

	engine, reminderSvc := router.Setup(cfg, db, cloud, sender)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Reminder.SweepInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Reminder.SweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					results, err := reminderSvc.Sweep(sweepCtx, cfg.Reminder.HoursAhead)
					if err != nil {
						log.Printf("reminder sweep: %v", err)
						continue
					}
					sent := 0
					for _, r := range results {
						if r.Result == "sent" {
							sent++
						}
					}
					log.Printf("reminder sweep: %d targets, %d sent", len(results), sent)
				}
			}
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
