package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"homely/config"
	providerRepo "homely/database/repository/provider"
	"homely/realtime"
	"homely/services/notification"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	TypeSubscriptionScan = "subscription:scan"
	TypeBookingReminder  = "booking:reminder"
)

// BookingReminderPayload schedules a pre-appointment push for one party.
type BookingReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkersDB,
	}
}

// InitWorker runs the async worker and the periodic scheduler in background.
func InitWorker(providers providerRepo.ProviderRepository, notifSvc notification.NotificationService, hub realtime.Publisher) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSubscriptionScan, handleSubscriptionScan(providers, notifSvc, hub))
	mux.HandleFunc(TypeBookingReminder, handleBookingReminder(notifSvc))

	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler()
}

// runScheduler enqueues the recurring subscription scan.
func runScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)

	task := asynq.NewTask(TypeSubscriptionScan, nil)
	if _, err := scheduler.Register("@every 6h", task); err != nil {
		log.Printf("[Worker] failed to register subscription scan: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] scheduler stopped: %v", err)
	}
}

// ReminderQueue schedules booking reminder tasks on the worker queue.
type ReminderQueue struct{}

func (ReminderQueue) Schedule(bookingID, userID, title, body string, fireAt time.Time) error {
	return EnqueueBookingReminder(BookingReminderPayload{
		BookingID: bookingID,
		UserID:    userID,
		Title:     title,
		Body:      body,
	}, fireAt)
}

// EnqueueBookingReminder schedules a one-off reminder task at fireAt.
func EnqueueBookingReminder(payload BookingReminderPayload, fireAt time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := asynq.NewClient(redisOpts())
	defer client.Close()

	_, err = client.Enqueue(asynq.NewTask(TypeBookingReminder, data), asynq.ProcessAt(fireAt))
	return err
}

// handleSubscriptionScan warns providers whose plan expires inside the warning
// window. Each provider is warned once per plan period.
func handleSubscriptionScan(providers providerRepo.ProviderRepository, notifSvc notification.NotificationService, hub realtime.Publisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		window := time.Duration(config.AppConfig.SubscriptionWarningDays) * 24 * time.Hour
		expiring, err := providers.GetExpiringSubscriptions(time.Now().Add(window))
		if err != nil {
			log.Printf("[SubscriptionScan] lookup failed: %v", err)
			return err
		}

		for _, p := range expiring {
			payload := map[string]any{
				"plan":      p.Subscription.Plan,
				"expiresAt": p.Subscription.ExpiresAt,
			}
			hub.Emit(p.ID, realtime.EventSubscriptionWarning, payload)

			if _, err := notifSvc.Record(ctx, p.ID, "subscription_warning",
				"Your subscription is about to expire", payload); err != nil {
				log.Printf("[SubscriptionScan] failed to record warning for %s: %v", p.ID, err)
				continue
			}

			if err := providers.UpdateSetDocument(p.ID, bson.M{"subscription.warned": true}); err != nil {
				log.Printf("[SubscriptionScan] failed to mark %s warned: %v", p.ID, err)
			}
		}
		return nil
	}
}

func handleBookingReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p BookingReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[BookingReminder] invalid payload: %v", err)
			return err
		}

		_, err := notifSvc.Record(ctx, p.UserID, "booking_reminder", p.Body, map[string]any{
			"bookingId": p.BookingID,
			"title":     p.Title,
		})
		if err != nil {
			log.Printf("[BookingReminder] failed to record reminder: %v", err)
		}
		return err
	}
}
