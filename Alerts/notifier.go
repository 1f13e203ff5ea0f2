package Alerts

import (
	"Vigil/Models"
	"Vigil/email"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Global Firebase client
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the FCM client once at startup. Credentials come
// from VIGIL_FIREBASE_CREDENTIALS.
func InitFirebase() error {
	credentials := os.Getenv("VIGIL_FIREBASE_CREDENTIALS")
	if credentials == "" {
		credentials = "./firebase-service-account.json"
	}
	opt := option.WithCredentialsFile(credentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// NotifyIssueReported fans an issue-report alert out to the zone's owner:
// every registered FCM device, the Slack channel if configured, and email
// as a fallback when the owner has no device token. Fire-and-forget; the
// evidence write already happened and is never rolled back on a failed
// dispatch.
func NotifyIssueReported(db *gorm.DB, zone Models.Zone, task Models.Task, report Models.Evidence) {
	var owner Models.User
	if err := db.First(&owner, zone.UserID).Error; err != nil {
		log.Printf("Issue alert: owner lookup failed for zone %d: %v", zone.ID, err)
		return
	}

	body := fmt.Sprintf("Issue reported in %s: %s — %s", zone.Name, task.Title, report.Comments)

	sent := 0
	var tokens []Models.FCMToken
	if err := db.Where("user_id = ?", owner.ID).Find(&tokens).Error; err != nil {
		log.Printf("Issue alert: token lookup failed for user %d: %v", owner.ID, err)
	}
	for _, token := range tokens {
		if err := sendFirebaseNotification(token.Value, zone, task, report, body); err != nil {
			log.Printf("Issue alert: FCM send failed for user %d: %v", owner.ID, err)
			continue
		}
		sent++
	}

	if err := SendSlackAlert(body); err != nil {
		log.Printf("Issue alert: Slack send failed: %v", err)
	}

	if sent == 0 && owner.Email != "" {
		config := Models.EmailConfigFromEnv()
		if config.SMTPServer != "" {
			message := Models.EmailMessage{
				To:      []string{owner.Email},
				Subject: fmt.Sprintf("Issue reported in %s", zone.Name),
				Body:    body,
			}
			if err := email.SendEmail(config, message); err != nil {
				log.Printf("Issue alert: email send failed: %v", err)
			}
		}
	}
}

// sendFirebaseNotification pushes one issue alert to one device.
func sendFirebaseNotification(fcmToken string, zone Models.Zone, task Models.Task, report Models.Evidence, body string) error {
	if firebaseClient == nil {
		return fmt.Errorf("firebase client not initialized - call InitFirebase() first")
	}

	message := &messaging.Message{
		Token: fcmToken,
		Data: map[string]string{
			"zone_id":     strconv.Itoa(int(zone.ID)),
			"zone_name":   zone.Name,
			"task_id":     strconv.Itoa(int(task.ID)),
			"task_title":  task.Title,
			"evidence_id": strconv.Itoa(int(report.ID)),
			"reason":      report.Comments,
		},
		Notification: &messaging.Notification{
			Title: "⚠️ Task Issue Reported",
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Icon:  "issue_alert_icon",
				Color: "#FFA500",
				Sound: "default",
			},
			Priority: "high",
		},
	}

	response, err := firebaseClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending Firebase message: %v", err)
	}

	log.Printf("Successfully sent Firebase notification: %s", response)
	return nil
}
