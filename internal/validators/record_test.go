package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/mkravets/sayright/models"
)

func TestRecordValidator_Favorite(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name     string
		favorite models.Favorite
		fields   []string
		wantErr  error
	}{
		{name: "valid", favorite: models.Favorite{Text: "the quick brown fox"}},
		{name: "empty text", favorite: models.Favorite{}, wantErr: ErrEmptyText},
		{name: "whitespace only", favorite: models.Favorite{Text: "   "}, wantErr: ErrEmptyText},
		{name: "too long", favorite: models.Favorite{Text: strings.Repeat("я", maxTextLength+1)}, wantErr: ErrTextTooLong},
		{name: "unknown field", favorite: models.Favorite{Text: "ok"}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.favorite, tt.fields...)
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordValidator_Tag(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		tag     models.Tag
		wantErr error
	}{
		{name: "valid without color", tag: models.Tag{Name: "hard"}},
		{name: "valid with color", tag: models.Tag{Name: "hard", Color: "#Ff00aB"}},
		{name: "empty name", tag: models.Tag{Color: "#ff00ab"}, wantErr: ErrEmptyTagName},
		{name: "missing hash", tag: models.Tag{Name: "hard", Color: "ff00ab7"}, wantErr: ErrInvalidTagColor},
		{name: "short color", tag: models.Tag{Name: "hard", Color: "#fff"}, wantErr: ErrInvalidTagColor},
		{name: "non-hex color", tag: models.Tag{Name: "hard", Color: "#ff00zz"}, wantErr: ErrInvalidTagColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.Validate(ctx, tt.tag); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordValidator_Settings(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	valid := models.Settings{DailyGoal: 10, PlaybackRate: 1.0, Locale: "en-US"}

	tests := []struct {
		name    string
		mutate  func(s models.Settings) models.Settings
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(s models.Settings) models.Settings { return s }},
		{name: "bare language locale", mutate: func(s models.Settings) models.Settings { s.Locale = "de"; return s }},
		{name: "zero goal", mutate: func(s models.Settings) models.Settings { s.DailyGoal = 0; return s }, wantErr: ErrInvalidDailyGoal},
		{name: "rate too slow", mutate: func(s models.Settings) models.Settings { s.PlaybackRate = 0.25; return s }, wantErr: ErrInvalidPlaybackRate},
		{name: "rate too fast", mutate: func(s models.Settings) models.Settings { s.PlaybackRate = 4; return s }, wantErr: ErrInvalidPlaybackRate},
		{name: "bad locale", mutate: func(s models.Settings) models.Settings { s.Locale = "english-USA"; return s }, wantErr: ErrInvalidLocale},
		{name: "lowercase region", mutate: func(s models.Settings) models.Settings { s.Locale = "en-us"; return s }, wantErr: ErrInvalidLocale},
		{
			name:   "scoped to locale skips goal",
			mutate: func(s models.Settings) models.Settings { s.DailyGoal = 0; return s },
			fields: []string{FieldLocale},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.Validate(ctx, tt.mutate(valid), tt.fields...); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordValidator_UnsupportedType(t *testing.T) {
	v := NewRecordValidator()

	if err := v.Validate(context.Background(), 42); err != ErrUnsupportedType {
		t.Errorf("Validate() = %v, want %v", err, ErrUnsupportedType)
	}
}
