package reels

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Reel is a short-form vertical video feed item.
type Reel struct {
	ID        string     `json:"_id"`
	VideoURL  string     `json:"videoUrl"`
	Duration  *float64   `json:"duration,omitempty"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	Caption   string     `json:"caption,omitempty"`
	Owner     Owner      `json:"user"`
	Likes     []string   `json:"likes"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
	Shares    []Share    `json:"shares"`
	SavedBy   []string   `json:"savedBy"`
	Music     *Music     `json:"music,omitempty"`
	Hashtags  []string   `json:"hashtags,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Owner struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified"`
}

type Music struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

type Reaction struct {
	User string       `json:"user"`
	Type ReactionType `json:"type"`
}

type Comment struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Share struct {
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patch carries the authoritative counters returned by a mutation. A nil
// field was not part of the response and must not overwrite local state.
type Patch struct {
	Likes     []string   `json:"likes"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
	Shares    []Share    `json:"shares"`
	SavedBy   []string   `json:"savedBy"`
}

// Apply replaces the fields present in p on r.
func (p Patch) Apply(r *Reel) {
	if p.Likes != nil {
		r.Likes = append([]string(nil), p.Likes...)
	}
	if p.Reactions != nil {
		r.Reactions = NormalizeReactions(p.Reactions)
	}
	if p.Comments != nil {
		r.Comments = append([]Comment(nil), p.Comments...)
	}
	if p.Shares != nil {
		r.Shares = append([]Share(nil), p.Shares...)
	}
	if p.SavedBy != nil {
		r.SavedBy = append([]string(nil), p.SavedBy...)
	}
}

func (r Reel) LikedBy(userID string) bool {
	return containsString(r.Likes, userID)
}

func (r Reel) IsSavedBy(userID string) bool {
	return containsString(r.SavedBy, userID)
}

// ReactionOf returns the active reaction of userID, if any.
func (r Reel) ReactionOf(userID string) (ReactionType, bool) {
	for i := len(r.Reactions) - 1; i >= 0; i-- {
		if r.Reactions[i].User == userID {
			return r.Reactions[i].Type, true
		}
	}
	return "", false
}

func containsString(values []string, want string) bool {
	if want == "" {
		return false
	}
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes lists the supported reactions in picker order.
var ReactionTypes = []ReactionType{ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry}

func ParseReactionType(raw string) (ReactionType, error) {
	want := ReactionType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range ReactionTypes {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown reaction type: %q", raw)
}

// NormalizeReactions keeps one reaction per user. A later entry replaces an
// earlier one in place, so the result keeps first-seen user order.
func NormalizeReactions(in []Reaction) []Reaction {
	out := make([]Reaction, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, r := range in {
		if i, ok := pos[r.User]; ok {
			out[i].Type = r.Type
			continue
		}
		pos[r.User] = len(out)
		out = append(out, r)
	}
	return out
}

// MostCommonReaction tallies the current reactions. Ties prefer the viewer's
// own reaction, then the type that appears first.
func MostCommonReaction(reactions []Reaction, viewerID string) (ReactionType, int) {
	reactions = NormalizeReactions(reactions)
	counts := make(map[ReactionType]int)
	order := make([]ReactionType, 0, len(ReactionTypes))
	var own ReactionType
	for _, r := range reactions {
		if counts[r.Type] == 0 {
			order = append(order, r.Type)
		}
		counts[r.Type]++
		if viewerID != "" && r.User == viewerID {
			own = r.Type
		}
	}

	var best ReactionType
	bestCount := 0
	for _, t := range order {
		c := counts[t]
		switch {
		case c > bestCount:
			best, bestCount = t, c
		case c == bestCount && t == own:
			best = t
		}
	}
	return best, bestCount
}

type ModeKind string

const (
	ModeCategory ModeKind = "category"
	ModeUser     ModeKind = "user"
	ModeHashtag  ModeKind = "hashtag"
	ModeTrending ModeKind = "trending"
)

// Mode selects the feed data source.
type Mode struct {
	Kind  ModeKind
	Value string
}

func (m Mode) String() string {
	if m.Kind == ModeTrending {
		return string(ModeTrending)
	}
	return string(m.Kind) + ":" + m.Value
}

// Paginated reports whether the source supports more than one page.
func (m Mode) Paginated() bool {
	return m.Kind != ModeTrending
}

// ParseMode parses "category:general", "user:<id>", "hashtag:<tag>" or
// "trending".
func ParseMode(raw string) (Mode, error) {
	raw = strings.TrimSpace(raw)
	if raw == string(ModeTrending) {
		return Mode{Kind: ModeTrending}, nil
	}
	kind, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Mode{}, fmt.Errorf("invalid feed source %q: expected kind:value or trending", raw)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Mode{}, fmt.Errorf("invalid feed source %q: empty value", raw)
	}
	switch ModeKind(strings.ToLower(kind)) {
	case ModeCategory:
		return Mode{Kind: ModeCategory, Value: value}, nil
	case ModeUser:
		return Mode{Kind: ModeUser, Value: value}, nil
	case ModeHashtag:
		tag := NormalizeHashtag(value)
		if tag == "" {
			return Mode{}, fmt.Errorf("invalid feed source %q: empty hashtag", raw)
		}
		return Mode{Kind: ModeHashtag, Value: tag}, nil
	default:
		return Mode{}, fmt.Errorf("unsupported feed source kind: %s", kind)
	}
}

func NormalizeHashtag(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	return strings.ToLower(norm.NFC.String(tag))
}

// Page is one batch returned by the listing endpoint.
type Page struct {
	Reels       []Reel
	HasNextPage bool
	CurrentPage int
}
