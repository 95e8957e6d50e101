package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glabrego/reels-cli/internal/reels"
)

// Record is a reel as the development backend stores it.
type Record struct {
	reels.Reel
	Category string `json:"category"`
}

var (
	categories = []string{"general", "comedy", "travel", "music"}
	owners     = []reels.Owner{
		{ID: "u-ana", Name: "Ana Ruiz", Verified: true},
		{ID: "u-kofi", Name: "Kofi Mensah"},
		{ID: "u-mei", Name: "Mei Tanaka", Verified: true},
		{ID: "u-lars", Name: "Lars Berg"},
	}
	captions = []string{
		"Sunrise over the ridge <a href=\"/tags/travel\">#travel</a>",
		"<p>Tried the new recipe</p><p>it <b>worked</b> #food</p>",
		"Practice run number 12 #music #live",
		"When the build passes on the first try #comedy",
		"Street market at night &amp; neon #travel #night",
		"Quick tip: hold the camera level <a href=\"https://example.com/tips\">more tips</a>",
	}
	songs = []reels.Music{
		{Title: "Blue Hour", Artist: "The Overpass"},
		{Title: "Static Bloom", Artist: "Nadia K"},
	}
)

// Generate builds n deterministic reels spread over the sample categories.
// Every seventh reel points at a missing video so the inline media
// fallback can be exercised.
func Generate(n int, start time.Time) []Record {
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("reel-%d", i))).String()
		name := fmt.Sprintf("clip-%03d", i)
		if i%7 == 6 {
			name = "missing-" + name
		}
		caption := captions[i%len(captions)]
		duration := float64(8 + (i*5)%22)
		rec := Record{
			Category: categories[i%len(categories)],
			Reel: reels.Reel{
				ID:        id,
				VideoURL:  "/uploads/reels/" + name,
				Duration:  &duration,
				Caption:   caption,
				Owner:     owners[i%len(owners)],
				Likes:     sampleUsers(i % 3),
				Reactions: sampleReactions(i),
				Comments:  []reels.Comment{},
				Shares:    []reels.Share{},
				SavedBy:   []string{},
				Hashtags:  hashtagsOf(caption),
				CreatedAt: start.Add(-time.Duration(i) * time.Hour),
			},
		}
		if i%3 == 0 {
			m := songs[i%len(songs)]
			rec.Music = &m
		}
		out = append(out, rec)
	}
	return out
}

// LoadFile reads a JSON array of records.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i := range records {
		if strings.TrimSpace(records[i].ID) == "" {
			records[i].ID = uuid.NewString()
		}
		if records[i].Category == "" {
			records[i].Category = "general"
		}
		if len(records[i].Hashtags) == 0 {
			records[i].Hashtags = hashtagsOf(records[i].Caption)
		}
		records[i].Reactions = reels.NormalizeReactions(records[i].Reactions)
	}
	return records, nil
}

func sampleUsers(n int) []string {
	users := make([]string, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, owners[i].ID)
	}
	return users
}

func sampleReactions(i int) []reels.Reaction {
	out := []reels.Reaction{}
	for j := 0; j < i%4; j++ {
		out = append(out, reels.Reaction{
			User: owners[j].ID,
			Type: reels.ReactionTypes[(i+j)%len(reels.ReactionTypes)],
		})
	}
	return out
}

func hashtagsOf(caption string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, field := range strings.FieldsFunc(caption, func(r rune) bool {
		return r == ' ' || r == '<' || r == '>' || r == '"'
	}) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := reels.NormalizeHashtag(field)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
