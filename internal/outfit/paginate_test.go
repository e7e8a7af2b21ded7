package outfit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packwise/packwise/internal/outfit"
)

func makeDays(n int) []outfit.DailyOutfit {
	days := make([]outfit.DailyOutfit, n)
	for i := range days {
		days[i].Day = i + 1
	}
	return days
}

func TestPaginate(t *testing.T) {
	days := makeDays(7)

	first := outfit.Paginate(days, 1, 0)
	assert.Equal(t, outfit.DefaultPageSize, first.PageSize)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 7, first.TotalDays)
	assert.Len(t, first.Days, 3)
	assert.Equal(t, 1, first.Days[0].Day)

	last := outfit.Paginate(days, 3, 3)
	assert.Len(t, last.Days, 1)
	assert.Equal(t, 7, last.Days[0].Day)

	past := outfit.Paginate(days, 4, 3)
	assert.Empty(t, past.Days)

	far := outfit.Paginate(days, 1<<62, 3)
	assert.Empty(t, far.Days)
	assert.Equal(t, 3, far.TotalPages)

	assert.Empty(t, outfit.Paginate(nil, 1, 3).Days)

	clamped := outfit.Paginate(days, 0, 3)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, 1, clamped.Days[0].Day)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, outfit.TotalPages(0, 3))
	assert.Equal(t, 1, outfit.TotalPages(3, 3))
	assert.Equal(t, 2, outfit.TotalPages(4, 3))
	assert.Equal(t, 2, outfit.TotalPages(4, 0))
}
