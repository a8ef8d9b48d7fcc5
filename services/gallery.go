package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
)

// MediaType is the gallery category of an item.
type MediaType string

const (
	MediaPhoto    MediaType = "photo"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// MediaTypes lists the gallery categories in display order.
var MediaTypes = []MediaType{MediaPhoto, MediaVideo, MediaDocument}

// TypeID returns the numeric category id stored alongside the type.
func (t MediaType) TypeID() int {
	switch t {
	case MediaPhoto:
		return 1
	case MediaVideo:
		return 2
	case MediaDocument:
		return 3
	}
	return 0
}

// DateFilter selects the order or window of a gallery listing.
type DateFilter string

const (
	DateRecent DateFilter = "recent"
	DateOldest DateFilter = "oldest"
	DateCustom DateFilter = "custom"
)

const dayLayout = "2006-01-02"

// GalleryMediaItem is one uploaded photo, video or document.
type GalleryMediaItem struct {
	ID      string    `json:"id"`
	URL     string    `json:"url"`
	Type    MediaType `json:"type"`
	Name    string    `json:"name"`
	Date    string    `json:"date"`
	TypeID  int       `json:"typeId"`
	Created time.Time `json:"-"`
}

// GalleryQuery holds the listing parameters.
type GalleryQuery struct {
	ProjectID string     `json:"project"`
	Type      MediaType  `json:"type"`
	Date      DateFilter `json:"date"`
	From      string     `json:"from"`
	To        string     `json:"to"`
}

// Validate checks the query. The project is required; a custom date filter
// needs both bounds.
func (q GalleryQuery) Validate() error {
	custom := q.Date == DateCustom
	return validation.ValidateStruct(&q,
		validation.Field(&q.ProjectID, validation.Required),
		validation.Field(&q.Type, validation.In(MediaPhoto, MediaVideo, MediaDocument)),
		validation.Field(&q.Date, validation.In(DateRecent, DateOldest, DateCustom)),
		validation.Field(&q.From, validation.When(custom, validation.Required), validation.Date(dayLayout)),
		validation.Field(&q.To, validation.When(custom, validation.Required), validation.Date(dayLayout)),
	)
}

// Window returns the inclusive time range of a custom query. ok is false for
// other filters.
func (q GalleryQuery) Window() (from, to time.Time, ok bool) {
	if q.Date != DateCustom {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(dayLayout, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(dayLayout, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		from, to = to, from
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), true
}

// SortNewestFirst reports whether the listing runs newest to oldest.
func (q GalleryQuery) SortNewestFirst() bool {
	return q.Date != DateOldest
}

// DateGroup is the items uploaded on one day.
type DateGroup struct {
	Date  string             `json:"date"`
	Items []GalleryMediaItem `json:"items"`
}

// GalleryListing is the grouped response of the listing endpoint.
type GalleryListing struct {
	Groups []DateGroup `json:"groups"`
}

// GroupByDate sorts items by creation time and groups them per day.
func GroupByDate(items []GalleryMediaItem, newestFirst bool) []DateGroup {
	sorted := make([]GalleryMediaItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if newestFirst {
			return sorted[i].Created.After(sorted[j].Created)
		}
		return sorted[i].Created.Before(sorted[j].Created)
	})

	groups := []DateGroup{}
	for _, item := range sorted {
		day := item.Created.Format(dayLayout)
		if n := len(groups); n > 0 && groups[n-1].Date == day {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, DateGroup{Date: day, Items: []GalleryMediaItem{item}})
	}
	return groups
}

// ParseGalleryListing decodes a listing body in any of the shapes the
// endpoint has served: {"groups": [...]}, {"data": [...]}, a bare array of
// items, or a bare array of groups. The result is flat.
func ParseGalleryListing(body []byte) ([]GalleryMediaItem, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, errors.New("gallery listing: empty body")
	}

	if strings.HasPrefix(trimmed, "{") {
		var envelope struct {
			Groups []DateGroup         `json:"groups"`
			Data   []GalleryMediaItem  `json:"data"`
			Items  []GalleryMediaItem  `json:"items"`
			Media  *[]GalleryMediaItem `json:"media"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("gallery listing: %w", err)
		}
		switch {
		case envelope.Groups != nil:
			return flattenGroups(envelope.Groups), nil
		case envelope.Data != nil:
			return envelope.Data, nil
		case envelope.Items != nil:
			return envelope.Items, nil
		case envelope.Media != nil:
			return *envelope.Media, nil
		}
		return []GalleryMediaItem{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("gallery listing: %w", err)
	}
	if len(raw) == 0 {
		return []GalleryMediaItem{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &probe); err != nil {
		return nil, fmt.Errorf("gallery listing: %w", err)
	}
	if _, grouped := probe["items"]; grouped {
		var groups []DateGroup
		if err := json.Unmarshal(body, &groups); err != nil {
			return nil, fmt.Errorf("gallery listing: %w", err)
		}
		return flattenGroups(groups), nil
	}

	var items []GalleryMediaItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("gallery listing: %w", err)
	}
	return items, nil
}

func flattenGroups(groups []DateGroup) []GalleryMediaItem {
	items := []GalleryMediaItem{}
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from user-supplied names and labels. The result
// is plain text; templates escape it on output.
func SanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := textPolicy.Sanitize(strings.TrimSpace(raw))
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
