package item

import "time"

// DateLayout is the calendar date format used at every boundary.
const DateLayout = "2006-01-02"

// Today returns the current calendar date in the local timezone.
func Today() string {
	return time.Now().Format(DateLayout)
}

// IsDate reports whether s is a valid YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// AddDays returns the date n days after the given YYYY-MM-DD date.
// Used for defer quick picks (tomorrow, +3, +7, +14).
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
