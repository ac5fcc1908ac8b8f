package utils

import (
	"html"
	"strconv"
	"strings"
	"time"
)

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// ParseID parses a positive note ID as typed by a user or carried in callback data.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// MentionHTML links to a Telegram user by ID, the same way the clients do.
func MentionHTML(userID int64, name string) string {
	return `<a href="tg://user?id=` + strconv.FormatInt(userID, 10) + `">` + html.EscapeString(name) + `</a>`
}
