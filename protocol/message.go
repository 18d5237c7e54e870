package protocol

// Response and notification frame types.
const (
	TypeSuccess           = "SUCCESS"
	TypeError             = "ERROR"
	TypeUserJoined        = "USER_JOINED"
	TypeUserLeft          = "USER_LEFT"
	TypeListFilesResponse = "LIST_FILES_RESPONSE"
	TypeOpenFileResponse  = "OPEN_FILE_RESPONSE"
	TypeEdit              = "EDIT"
	TypeListFilesRequest  = "LIST_FILES_REQUEST"
)

// Error sub-kinds carried in PARAM1 of an ERROR frame.
const (
	KindNotLoggedIn     = "NOT_LOGGED_IN"
	KindAlreadyLoggedIn = "ALREADY_LOGGED_IN"
	KindInvalidUsername = "INVALID_USERNAME"
	KindUsernameTaken   = "USERNAME_TAKEN"
	KindInvalidMessage  = "INVALID_MESSAGE"
	KindUnknownCommand  = "UNKNOWN_COMMAND"
	KindFileError       = "FILE_ERROR"
	KindSaveError       = "SAVE_ERROR"
	KindCreateError     = "CREATE_ERROR"
	KindListError       = "LIST_ERROR"
	KindProcessingError = "PROCESSING_ERROR"
)

func Success(detail string) string {
	return Encode(TypeSuccess, detail, "")
}

// Error builds an ERROR frame; the sub-kind rides in PARAM1 and the
// diagnostic detail in PARAM2.
func Error(kind, detail string) string {
	return Encode(TypeError, kind, detail)
}

func UserJoined(displayName string) string {
	return Encode(TypeUserJoined, displayName, "")
}

func UserLeft(displayName string) string {
	return Encode(TypeUserLeft, displayName, "")
}

func ListFilesResponse(csv string) string {
	return Encode(TypeListFilesResponse, csv, "")
}

func OpenFileResponse(name, content string) string {
	return Encode(TypeOpenFileResponse, name, content)
}

func EditNotification(name, content string) string {
	return Encode(TypeEdit, name, content)
}

// ListFilesRequestNudge asks a client to re-request the file list. Sent to
// the other connections after a successful CREATE_FILE.
func ListFilesRequestNudge() string {
	return Encode(TypeListFilesRequest, "", "")
}
