// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package models

import "time"

// Rating is one logical rating of a restaurant by a user. There is at most
// one rating per (user, restaurant) pair; a repeat rating overwrites the
// previous value and timestamp. The JSON shape matches the at-rest format
// used by the ratings file: {user, restaurant, rating, date}.
type Rating struct {
	// User is the rating user's identifier ("guest" for anonymous raters).
	User string `json:"user"`

	// Restaurant is the rated restaurant's name.
	Restaurant string `json:"restaurant"`

	// Rating is the rating value in [0, 5].
	Rating float64 `json:"rating"`

	// Date is when the rating was recorded (RFC3339).
	Date time.Time `json:"date"`
}
