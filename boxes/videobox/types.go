package videobox

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Status is the state of a video processing job.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusProcessing  Status = "processing"
	StatusComplete    Status = "complete"
	StatusFailed      Status = "failed"
	StatusUnknown     Status = "unknown"
)

// ParseStatus parses a status as reported by the box.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusDownloading, StatusProcessing, StatusComplete, StatusFailed, StatusUnknown:
		return st, nil
	}
	return "", fmt.Errorf("videobox: unknown status %q", s)
}

// Done reports whether the job has stopped, successfully or not.
func (s Status) Done() bool {
	return s == StatusComplete || s == StatusFailed
}

// UnmarshalText maps statuses this package does not know to StatusUnknown.
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		st = StatusUnknown
	}
	*s = st
	return nil
}

// Video is the progress of a video processing job.
type Video struct {
	ID     string `json:"id" validate:"required"`
	Status Status `json:"status"`

	DownloadTotal            int64  `json:"downloadTotal"`
	DownloadComplete         int64  `json:"downloadComplete"`
	DownloadCompleteEstimate string `json:"downloadCompleteEstimate"`

	FramesCount          int `json:"framesCount"`
	FramesComplete       int `json:"framesComplete"`
	MillisecondsComplete int `json:"millisecondsComplete"`
	// LastFrameBase64 is the most recently processed frame as a base64 image.
	LastFrameBase64 string `json:"lastFrameBase64"`
	// Expires is when the box discards the results.
	Expires string `json:"expires"`
}

func (v *Video) fillDefaults() {
	if v.Status == "" {
		v.Status = StatusUnknown
	}
	if v.DownloadCompleteEstimate == "" {
		v.DownloadCompleteEstimate = "unknown"
	}
}

// Analysis is the result of a finished job. A section is nil when the
// matching box took no part.
type Analysis struct {
	Ready   bool            `json:"ready"`
	Facebox *FaceboxResults `json:"facebox,omitempty"`
	Tagbox  *TagboxResults  `json:"tagbox,omitempty"`
	Nudebox *NudeboxResults `json:"nudebox,omitempty"`
}

// FaceboxResults are the faces found across the video.
type FaceboxResults struct {
	Faces       []Item `json:"faces" validate:"dive"`
	ErrorsCount int    `json:"errorsCount"`
	LastError   string `json:"lastError,omitempty"`
}

// TagboxResults are the tags found across the video.
type TagboxResults struct {
	Tags        []Item `json:"tags" validate:"dive"`
	ErrorsCount int    `json:"errorsCount"`
	LastError   string `json:"lastError,omitempty"`
}

// NudeboxResults are the nudity findings across the video.
type NudeboxResults struct {
	Nudity      []Item `json:"nudity" validate:"dive"`
	ErrorsCount int    `json:"errorsCount"`
	LastError   string `json:"lastError,omitempty"`
}

// Item is one thing, such as a face or a tag, seen at one or more points
// in the video.
type Item struct {
	Key       string  `json:"key" validate:"required"`
	Instances []Range `json:"instances" validate:"dive"`
}

// Range is a span of the video, in frames and milliseconds.
type Range struct {
	Start   int `json:"start"`
	End     int `json:"end"`
	StartMS int `json:"start_ms"`
	EndMS   int `json:"end_ms"`
	// Confidence is nil when the box reports none.
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
}

// CheckOptions tune how a video is processed. Build them with NewCheckOptions;
// the zero value uses the box defaults.
type CheckOptions struct {
	values url.Values
}

// CheckOptionsBuilder builds CheckOptions.
type CheckOptionsBuilder struct {
	values url.Values
}

// NewCheckOptions starts an empty set of options.
func NewCheckOptions() *CheckOptionsBuilder {
	return &CheckOptionsBuilder{values: url.Values{}}
}

func (b *CheckOptionsBuilder) set(key, value string) *CheckOptionsBuilder {
	b.values.Set(key, value)
	return b
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ResultDuration sets how long the box keeps the results.
func (b *CheckOptionsBuilder) ResultDuration(d time.Duration) *CheckOptionsBuilder {
	return b.set("resultDuration", d.String())
}

// SkipFrames sets the number of frames skipped between extractions.
func (b *CheckOptionsBuilder) SkipFrames(n int) *CheckOptionsBuilder {
	return b.set("skipframes", strconv.Itoa(n))
}

// SkipSeconds sets the number of seconds skipped between extractions.
func (b *CheckOptionsBuilder) SkipSeconds(n int) *CheckOptionsBuilder {
	return b.set("skipseconds", strconv.Itoa(n))
}

// FrameWidth sets the width of extracted frames.
func (b *CheckOptionsBuilder) FrameWidth(px int) *CheckOptionsBuilder {
	return b.set("frameWidth", strconv.Itoa(px))
}

// FrameHeight sets the height of extracted frames.
func (b *CheckOptionsBuilder) FrameHeight(px int) *CheckOptionsBuilder {
	return b.set("frameHeight", strconv.Itoa(px))
}

// FrameConcurrency sets how many frames are processed at once.
func (b *CheckOptionsBuilder) FrameConcurrency(n int) *CheckOptionsBuilder {
	return b.set("frameConcurrency", strconv.Itoa(n))
}

// FaceboxThreshold sets the minimum facebox confidence for a frame to be reported.
func (b *CheckOptionsBuilder) FaceboxThreshold(t float64) *CheckOptionsBuilder {
	return b.set("faceboxThreshold", formatFloat(t))
}

// TagboxInclude selects which tags are reported, "all" or "custom".
func (b *CheckOptionsBuilder) TagboxInclude(include string) *CheckOptionsBuilder {
	return b.set("tagboxInclude", include)
}

// TagboxThreshold sets the minimum tagbox confidence for a frame to be reported.
func (b *CheckOptionsBuilder) TagboxThreshold(t float64) *CheckOptionsBuilder {
	return b.set("tagboxThreshold", formatFloat(t))
}

// NudeboxThreshold sets the minimum nudebox confidence for a frame to be reported.
func (b *CheckOptionsBuilder) NudeboxThreshold(t float64) *CheckOptionsBuilder {
	return b.set("nudeboxThreshold", formatFloat(t))
}

// Finish returns the options built so far. Later changes to b do not affect them.
func (b *CheckOptionsBuilder) Finish() CheckOptions {
	values := make(url.Values, len(b.values))
	for k, v := range b.values {
		values[k] = append([]string(nil), v...)
	}
	return CheckOptions{values: values}
}

// Get returns the value of an option by its wire name, or "" when unset.
func (o CheckOptions) Get(key string) string {
	return o.values.Get(key)
}
