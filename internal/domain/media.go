package domain

// StatusOK is the platform's success sentinel.
const StatusOK = "ok"

// MediaRecord is the body of media/{id}/info/.
type MediaRecord struct {
	Items               []MediaItem `json:"items"`
	NumResults          int         `json:"num_results"`
	MoreAvailable       bool        `json:"more_available"`
	AutoLoadMoreEnabled bool        `json:"auto_load_more_enabled"`
	Status              string      `json:"status"`
}

// First returns the first item or nil when the record is empty.
func (r *MediaRecord) First() *MediaItem {
	if r == nil || len(r.Items) == 0 {
		return nil
	}
	return &r.Items[0]
}

type MediaItem struct {
	TakenAt                      int64          `json:"taken_at"`
	Pk                           int64          `json:"pk"`
	ID                           string         `json:"id"`
	DeviceTimestamp              int64          `json:"device_timestamp"`
	MediaType                    int            `json:"media_type"`
	Code                         string         `json:"code"`
	ClientCacheKey               string         `json:"client_cache_key"`
	FilterType                   int            `json:"filter_type"`
	ImageVersions2               *ImageVersions `json:"image_versions2,omitempty"`
	OriginalWidth                int            `json:"original_width"`
	OriginalHeight               int            `json:"original_height"`
	User                         *User          `json:"user,omitempty"`
	OrganicTrackingToken         string         `json:"organic_tracking_token"`
	LikeCount                    int            `json:"like_count"`
	TopLikers                    []string       `json:"top_likers,omitempty"`
	HasLiked                     bool           `json:"has_liked"`
	CommentLikesEnabled          bool           `json:"comment_likes_enabled"`
	HasMoreComments              bool           `json:"has_more_comments"`
	MaxNumVisiblePreviewComments int            `json:"max_num_visible_preview_comments"`
	PreviewComments              []any          `json:"preview_comments,omitempty"`
	CommentCount                 int            `json:"comment_count"`
	Caption                      *Caption       `json:"caption,omitempty"`
	CaptionIsEdited              bool           `json:"caption_is_edited"`
	PhotoOfYou                   bool           `json:"photo_of_you"`
	CanViewerSave                bool           `json:"can_viewer_save"`
}

// Permalink is the public post URL, empty when the item has no code.
func (m *MediaItem) Permalink() string {
	if m == nil {
		return ""
	}
	return Permalink(m.Code)
}

// Permalink builds the public post URL for a shortcode.
func Permalink(code string) string {
	if code == "" {
		return ""
	}
	return "https://www.instagram.com/p/" + code + "/"
}

// CaptionText returns the caption text or an empty string.
func (m *MediaItem) CaptionText() string {
	if m == nil || m.Caption == nil {
		return ""
	}
	return m.Caption.Text
}

// BestCandidate returns the widest image candidate.
func (m *MediaItem) BestCandidate() *Candidate {
	if m == nil || m.ImageVersions2 == nil {
		return nil
	}
	var best *Candidate
	for i := range m.ImageVersions2.Candidates {
		c := &m.ImageVersions2.Candidates[i]
		if best == nil || c.Width > best.Width {
			best = c
		}
	}
	return best
}

type ImageVersions struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

type User struct {
	Pk                         int64  `json:"pk"`
	Username                   string `json:"username"`
	FullName                   string `json:"full_name"`
	IsPrivate                  bool   `json:"is_private"`
	ProfilePicURL              string `json:"profile_pic_url"`
	ProfilePicID               string `json:"profile_pic_id,omitempty"`
	IsVerified                 bool   `json:"is_verified"`
	HasAnonymousProfilePicture bool   `json:"has_anonymous_profile_picture"`
	CanBoostPost               bool   `json:"can_boost_post"`
	CanSeeOrganicInsights      bool   `json:"can_see_organic_insights"`
	ShowInsightsTerms          bool   `json:"show_insights_terms"`
	IsUnpublished              bool   `json:"is_unpublished"`
}

type Caption struct {
	Pk           int64  `json:"pk"`
	UserID       int64  `json:"user_id"`
	Text         string `json:"text"`
	Type         int    `json:"type"`
	CreatedAt    int64  `json:"created_at"`
	CreatedAtUTC int64  `json:"created_at_utc"`
	ContentType  string `json:"content_type"`
	Status       string `json:"status"`
	BitFlags     int    `json:"bit_flags"`
	User         *User  `json:"user,omitempty"`
	MediaID      int64  `json:"media_id"`
}

// DeleteResult is the body of media/{id}/delete/.
type DeleteResult struct {
	DidDelete bool   `json:"did_delete"`
	Status    string `json:"status"`
}
