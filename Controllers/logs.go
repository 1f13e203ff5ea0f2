package Controllers

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Vigil/middleware"
)

// GetLogs returns the most recent request log lines for the admin panel.
func GetLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	file, err := os.Open("logs/requests.log")
	if err != nil {
		return c.JSON(fiber.Map{"logs": []middleware.LogData{}, "total": 0})
	}
	defer file.Close()

	var entries []middleware.LogData
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry middleware.LogData
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return c.JSON(fiber.Map{
		"logs":  entries,
		"total": len(entries),
	})
}
