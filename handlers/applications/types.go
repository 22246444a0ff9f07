package applications

// Constants for error messages
const (
	ErrInvalidRequest      = "Invalid request data"
	ErrNoFileUploaded      = "No file uploaded"
	ErrFailedStoreFile     = "Failed to store uploaded file"
	ErrFailedFetchApps     = "Failed to fetch applications"
	ErrNoPermissionList    = "Only the task creator can list its applications"
	ErrArtifactUnavailable = "Application file is unavailable"
)

// ReviewRequest carries the creator's evaluation; which fields are legal
// depends on the task's evaluation mode
type ReviewRequest struct {
	Text   *string `json:"text"`
	Points *int    `json:"points"`
}
