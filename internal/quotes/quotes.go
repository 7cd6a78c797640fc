// Package quotes is a static lookup table of motivational lines shown on
// the status screen and the board footer.
package quotes

import "time"

var quotes = []string{
	"Success is not final, failure is not fatal: It is the courage to continue that counts.",
	"The best way to predict your future is to create it.",
	"Hard work beats talent when talent doesn't work hard.",
	"The only way to do great work is to love what you do.",
	"Believe you can and you're halfway there.",
	"Don't watch the clock; do what it does. Keep going.",
	"Your time is limited, don't waste it living someone else's life.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"You are never too old to set another goal or to dream a new dream.",
	"The harder you work for something, the greater you'll feel when you achieve it.",
	"The only limit to our realization of tomorrow will be our doubts of today.",
	"Do what you can, with what you have, where you are.",
	"Dreams don't work unless you do.",
	"The only place where success comes before work is in the dictionary.",
	"The secret of getting ahead is getting started.",
	"Focus on the journey, not the destination.",
	"The difference between ordinary and extraordinary is that little extra.",
	"Don't let yesterday take up too much of today.",
	"Either you run the day or the day runs you.",
	"You don't have to be great to start, but you have to start to be great.",
	"When you feel like quitting, think about why you started.",
	"Discipline is the bridge between goals and accomplishment.",
	"The key to success is to focus on goals, not obstacles.",
	"It's not about having time, it's about making time.",
	"Your exam journey is a marathon, not a sprint. Pace yourself and stay consistent.",
	"Every hour of study is a step closer to your goal.",
	"Today's preparation determines tomorrow's achievement.",
	"The expert in anything was once a beginner. Keep studying!",
	"Small daily improvements lead to stunning results over time.",
	"Your success story begins with consistent daily efforts.",
}

// All returns the full quote list.
func All() []string {
	out := make([]string, len(quotes))
	copy(out, quotes)
	return out
}

// ForDate returns the quote of the day: the same date always yields the
// same line.
func ForDate(t time.Time) string {
	y, _, _ := t.Date()
	idx := (t.YearDay() + y) % len(quotes)
	return quotes[idx]
}
