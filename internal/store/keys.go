package store

// Keys used by the session and settings.
const (
	KeyUserToken                = "user_token"
	KeyUserInfo                 = "user_info"
	KeyIsFirstLogin             = "is_first_login"
	KeyUserType                 = "user_type"
	KeyDeviceID                 = "device_id"
	KeyPushToken                = "push_token"
	KeyPushNotificationEnabled  = "push_notification_enabled"
	KeySoundReminderEnabled     = "sound_reminder_enabled"
	KeyVibrationReminderEnabled = "vibration_reminder_enabled"
	KeyReminderTimes            = "reminder_times"
	KeyTargetCalories           = "target_calories"
	KeyTargetWeight             = "target_weight"
	KeyLastSyncTime             = "last_sync_time"
)
