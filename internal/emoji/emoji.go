package emoji

import (
	"github.com/drakos74/free-coin-cross/internal/model"
)

// https://unicode.org/emoji/charts/full-emoji-list.html
const (
	SunFace      = "🌞"
	EclipseFace  = "🌚"
	Zero         = "🥜"
	SlightlyDown = "🌶"
	SlightlyUp   = "🥦"

	DotSnow  = "❄"
	DotFire  = "🔥"
	DotWater = "💧"

	Error = "🚫"

	Open  = "🔔"
	Close = "🔕"

	Money = "💰"
)

// MapOpen maps an order being placed or removed.
func MapOpen(s bool) string {
	if s {
		return Open
	}
	return Close
}

// MapCross maps the type of cross to an emoji
func MapCross(t model.CrossType) string {
	switch t {
	case model.Golden:
		return SunFace
	case model.Death:
		return EclipseFace
	}
	return Error
}

// MapToSign maps the given float value according to it's sign.
func MapToSign(f float64) string {
	emo := DotSnow
	if f > 0 {
		emo = DotFire
	} else if f < 0 {
		emo = DotWater
	}
	return emo
}

// MapToSentiment maps the given float value according to it's sign.
func MapToSentiment(f float64) string {
	emo := Zero
	if f > 0 {
		emo = SlightlyUp
	} else if f < 0 {
		emo = SlightlyDown
	}
	return emo
}
