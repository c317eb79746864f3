package customformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderDateBasicComponents(t *testing.T) {
	tt := time.Date(2024, time.March, 5, 13, 4, 9, 0, time.UTC)

	assert.Equal(t, "2024-03-05", RenderDate("yyyy-MM-dd", tt))
	assert.Equal(t, "13:04:09", RenderDate("HH:mm:ss", tt))
	assert.Equal(t, "24-3-5", RenderDate("yy-M-d", tt))
}

func TestRenderDateNamedMonthAndWeekday(t *testing.T) {
	tt := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "March 05, 2024", RenderDate("MMMM dd, yyyy", tt))
	assert.Equal(t, "Tue", RenderDate("EEE", tt))
	assert.Equal(t, "Tuesday", RenderDate("EEEE", tt))
}

func TestRenderDateLiteralText(t *testing.T) {
	tt := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Q1 2024", RenderDate("'Q1' yyyy", tt))
}

func TestRenderDateEscapedQuoteInsideLiteral(t *testing.T) {
	tt := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "it's 2024", RenderDate("'it''s' yyyy", tt))
}

func TestRenderDateUnknownFieldPassesThroughMarked(t *testing.T) {
	tt := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "?Q?", RenderDate("Q", tt))
}

func TestRenderDateAMPM(t *testing.T) {
	morning := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 5, 21, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:00 am", RenderDate("hh:mm a", morning))
	assert.Equal(t, "09:00 pm", RenderDate("hh:mm a", evening))
}
