package validator

import (
	"unicode/utf8"

	"github.com/clubmsg/backend/internal/domain/entity"
)

func ClubTitle(title string) bool {
	return utf8.RuneCountInString(title) >= 1 && utf8.RuneCountInString(title) <= entity.MaxClubTitleLength
}

func ClubAbout(about string) bool {
	return utf8.RuneCountInString(about) <= entity.MaxClubAboutLength
}

func ProfileAbout(about string) bool {
	return utf8.RuneCountInString(about) <= entity.MaxAboutLength
}
