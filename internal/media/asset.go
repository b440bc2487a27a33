// internal/media/asset.go
//
// Media assets move through a small lifecycle: picked locally, uploading,
// then either uploaded (with a remote URL) or failed. Every asset gets a
// client-side handle at pick time so the UI can reference it before the
// remote URL exists.

package media

// Category partitions assets for quota accounting and upload routing.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
)

// Status is the upload lifecycle stage of an asset.
type Status string

const (
	StatusPicked    Status = "picked"
	StatusUploading Status = "uploading"
	StatusUploaded  Status = "uploaded"
	StatusFailed    Status = "failed"
)

// Asset is one piece of media tracked by the pipeline.
type Asset struct {
	// Handle is a client-generated identifier, stable across the asset's
	// whole lifecycle. It is never sent to the server.
	Handle   string
	Category Category

	// LocalPath is set for video selections, which upload by streaming the
	// file. DataURI is set for image and document selections, which upload
	// as inline base64.
	LocalPath string
	DataURI   string

	// RemoteURL is the storage URL, set only once Status is uploaded.
	RemoteURL string
	Status    Status
}

// Selection is what a picker hands back for one chosen file.
type Selection struct {
	Path    string
	DataURI string
}

// Picker chooses a local file for the given category. A nil selection with
// a nil error means the user cancelled.
type Picker interface {
	Pick(category Category) (*Selection, error)
}
