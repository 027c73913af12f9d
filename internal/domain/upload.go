package domain

// Photo is raw image content. It is never inspected.
type Photo []byte

// PublishCommand is the unit of work consumed by Publish.
type PublishCommand struct {
	Caption string `validate:"max=2200"`
	Photo   Photo  `validate:"required,min=1"`
}

// UploadResult is the body of upload/photo/.
type UploadResult struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

func (r *UploadResult) OK() bool {
	return r != nil && r.Status == StatusOK
}

// PublishResult is the body of media/configure/.
type PublishResult struct {
	Media    *MediaItem `json:"media,omitempty"`
	UploadID string     `json:"upload_id"`
	Status   string     `json:"status"`
}

func (r *PublishResult) OK() bool {
	return r != nil && r.Status == StatusOK
}

// DeviceProfile is the fixed descriptive payload the configure endpoint
// validates. Values are sent as given.
type DeviceProfile struct {
	DeviceID       string
	Manufacturer   string
	Model          string
	AndroidVersion string
	AndroidRelease string

	CropOriginalSize string
	CropCenter       string
	CropZoom         string

	SourceWidth  string
	SourceHeight string
}

// DefaultDeviceProfile mirrors the config defaults.
func DefaultDeviceProfile() DeviceProfile {
	return DeviceProfile{
		Manufacturer:     "Huawei",
		Model:            "HUAWEI SCL - L03",
		AndroidVersion:   "20",
		AndroidRelease:   "4.4.4",
		CropOriginalSize: "[800.0,800.0]",
		CropCenter:       "[0.0,-0.0]",
		CropZoom:         "1.0",
		SourceWidth:      "800",
		SourceHeight:     "800",
	}
}
