package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	NewSessionTitle   = "Unnamed session"
	SessionTitleLimit = 60
)
