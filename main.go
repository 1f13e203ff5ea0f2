package main

import (
	"Vigil/Alerts"
	"Vigil/CronJobs"
	"Vigil/FiberConfig"
	"Vigil/Models"
	"log"
)

func main() {
	Models.Connect()

	go func() {
		if err := Alerts.InitFirebase(); err != nil {
			log.Println("Firebase disabled:", err)
		}
	}()

	refresher := CronJobs.NewDashboardRefresher(Models.DB, false)
	if err := refresher.Start(); err != nil {
		log.Println("Failed to start dashboard refresher:", err)
	}
	defer refresher.Stop()

	FiberConfig.FiberConfig()
}
