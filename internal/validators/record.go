package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mkravets/sayright/models"
)

const (
	FieldText         = "text"
	FieldTagName      = "name"
	FieldTagColor     = "color"
	FieldDailyGoal    = "daily_goal"
	FieldPlaybackRate = "playback_rate"
	FieldLocale       = "locale"
)

// maxTextLength bounds a practice sentence; the assessment service rejects
// longer reference texts anyway.
const maxTextLength = 1000

type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Favorite:
		return v.validateFavorite(ctx, value, fields...)
	case *models.Favorite:
		return v.validateFavorite(ctx, *value, fields...)

	case models.Tag:
		return v.validateTag(ctx, value, fields...)
	case *models.Tag:
		return v.validateTag(ctx, *value, fields...)

	case models.Settings:
		return v.validateSettings(ctx, value, fields...)
	case *models.Settings:
		return v.validateSettings(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateFavorite(_ context.Context, favorite models.Favorite, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			text := strings.TrimSpace(favorite.Text)
			if text == "" {
				return ErrEmptyText
			}
			if utf8.RuneCountInString(text) > maxTextLength {
				return ErrTextTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateTag(_ context.Context, tag models.Tag, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTagName, FieldTagColor}
	}

	for _, f := range fields {
		switch f {
		case FieldTagName:
			if strings.TrimSpace(tag.Name) == "" {
				return ErrEmptyTagName
			}
		case FieldTagColor:
			if tag.Color != "" && !isValidColor(tag.Color) {
				return ErrInvalidTagColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateSettings(_ context.Context, settings models.Settings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDailyGoal, FieldPlaybackRate, FieldLocale}
	}

	for _, f := range fields {
		switch f {
		case FieldDailyGoal:
			if settings.DailyGoal <= 0 {
				return ErrInvalidDailyGoal
			}
		case FieldPlaybackRate:
			if settings.PlaybackRate < 0.5 || settings.PlaybackRate > 2.0 {
				return ErrInvalidPlaybackRate
			}
		case FieldLocale:
			if settings.Locale != "" && !isValidLocale(settings.Locale) {
				return ErrInvalidLocale
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidColor(color string) bool {
	if len(color) != 7 || color[0] != '#' {
		return false
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// isValidLocale accepts BCP 47-shaped tags such as "en" or "en-US". Full tag
// registry validation is left to the assessment service.
func isValidLocale(locale string) bool {
	parts := strings.Split(locale, "-")
	if len(parts) > 2 {
		return false
	}

	language := parts[0]
	if len(language) < 2 || len(language) > 3 {
		return false
	}
	for _, c := range language {
		if c < 'a' || c > 'z' {
			return false
		}
	}

	if len(parts) == 2 {
		region := parts[1]
		if len(region) != 2 {
			return false
		}
		for _, c := range region {
			if c < 'A' || c > 'Z' {
				return false
			}
		}
	}

	return true
}
