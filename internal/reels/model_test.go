package reels

import "testing"

func TestNormalizeReactions_ReplacesPriorReactionOfSameUser(t *testing.T) {
	got := NormalizeReactions([]Reaction{
		{User: "a", Type: ReactionLike},
		{User: "b", Type: ReactionWow},
		{User: "a", Type: ReactionLove},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 reactions, got %+v", got)
	}
	if got[0].User != "a" || got[0].Type != ReactionLove {
		t.Fatalf("expected a's reaction replaced in place, got %+v", got[0])
	}
}

func TestMostCommonReaction(t *testing.T) {
	tests := []struct {
		name      string
		reactions []Reaction
		viewer    string
		want      ReactionType
		count     int
	}{
		{name: "empty", want: "", count: 0},
		{
			name: "clear winner",
			reactions: []Reaction{
				{User: "a", Type: ReactionHaha},
				{User: "b", Type: ReactionHaha},
				{User: "c", Type: ReactionSad},
			},
			want:  ReactionHaha,
			count: 2,
		},
		{
			name: "tie prefers viewer",
			reactions: []Reaction{
				{User: "a", Type: ReactionHaha},
				{User: "me", Type: ReactionSad},
			},
			viewer: "me",
			want:   ReactionSad,
			count:  1,
		},
		{
			name: "tie without viewer keeps first seen",
			reactions: []Reaction{
				{User: "a", Type: ReactionWow},
				{User: "b", Type: ReactionLike},
			},
			viewer: "me",
			want:   ReactionWow,
			count:  1,
		},
		{
			name: "duplicate user counted once",
			reactions: []Reaction{
				{User: "a", Type: ReactionLike},
				{User: "a", Type: ReactionLike},
				{User: "b", Type: ReactionAngry},
				{User: "c", Type: ReactionAngry},
			},
			want:  ReactionAngry,
			count: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, count := MostCommonReaction(tc.reactions, tc.viewer)
			if got != tc.want || count != tc.count {
				t.Fatalf("expected %q x%d, got %q x%d", tc.want, tc.count, got, count)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    Mode
		wantErr bool
	}{
		{raw: "category:general", want: Mode{Kind: ModeCategory, Value: "general"}},
		{raw: "user:42", want: Mode{Kind: ModeUser, Value: "42"}},
		{raw: "hashtag:#GoLang", want: Mode{Kind: ModeHashtag, Value: "golang"}},
		{raw: "trending", want: Mode{Kind: ModeTrending}},
		{raw: "category:", wantErr: true},
		{raw: "album:1", wantErr: true},
		{raw: "general", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %+v, got %+v", tc.raw, tc.want, got)
		}
	}
}

func TestPatchApply_OnlyReplacesPresentFields(t *testing.T) {
	r := Reel{ID: "r1", Likes: []string{"a"}, SavedBy: []string{"b"}}
	Patch{Likes: []string{"a", "c"}}.Apply(&r)
	if len(r.Likes) != 2 {
		t.Fatalf("expected likes replaced, got %+v", r.Likes)
	}
	if len(r.SavedBy) != 1 || r.SavedBy[0] != "b" {
		t.Fatalf("expected savedBy untouched, got %+v", r.SavedBy)
	}
}

func TestNormalizeVideoURL(t *testing.T) {
	tests := []struct {
		base, raw, want string
	}{
		{"https://api.example.com/api", "https://cdn.example.com/uploads/v1", "https://cdn.example.com/uploads/v1.mp4"},
		{"https://api.example.com/api", "https://cdn.example.com/uploads/v1.webm", "https://cdn.example.com/uploads/v1.webm"},
		{"https://api.example.com/api", "media/abc", "https://api.example.com/media/abc.mp4"},
		{"https://api.example.com/api", "https://cdn.example.com/stream/xyz", "https://cdn.example.com/stream/xyz"},
		{"https://api.example.com/api", "", ""},
	}
	for _, tc := range tests {
		if got := NormalizeVideoURL(tc.base, tc.raw); got != tc.want {
			t.Fatalf("NormalizeVideoURL(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}
