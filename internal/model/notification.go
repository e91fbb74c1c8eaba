package model

// NotificationSettings holds a user's expiry-reminder preferences, one row
// per user. Rows are created lazily on first write; absent rows read as
// DefaultNotificationSettings.
type NotificationSettings struct {
	UserID   string `json:"user_id"`
	Enabled  bool   `json:"enabled"`
	Notify30 bool   `json:"notify_30"`
	Notify14 bool   `json:"notify_14"`
	Notify7  bool   `json:"notify_7"`
	Notify1  bool   `json:"notify_1"`
}

// DefaultNotificationSettings returns the all-enabled defaults applied when
// a user has no stored settings row. Keeping the default policy here avoids
// null-checks scattered across callers.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:   userID,
		Enabled:  true,
		Notify30: true,
		Notify14: true,
		Notify7:  true,
		Notify1:  true,
	}
}
