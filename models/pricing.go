package models

import "fmt"

// priceTable holds the registration base fee and the per-artwork fee
// schedule for each event type. The first artwork costs schedule[0], the
// second schedule[1], and every further piece repeats the last value.
// Example: art with 2 artworks = 250 + 30 + 20 = 300.
type priceRow struct {
	Base     int
	Schedule []int
}

var priceTable = map[string]priceRow{
	"art":         {Base: 250, Schedule: []int{30, 20}},
	"photography": {Base: 250, Schedule: []int{30, 20}},
	"singing":     {Base: 350, Schedule: []int{50, 30}},
	"dance":       {Base: 400, Schedule: []int{60, 40}},
}

// Fee returns the total registration fee in rupees for the given event
// type and artwork count. The amount is always computed server-side; the
// client never supplies it.
func Fee(eventType string, artworks int) (int, error) {
	row, ok := priceTable[eventType]
	if !ok {
		return 0, fmt.Errorf("unknown event type: %s", eventType)
	}
	event, ok := EventByType(eventType)
	if !ok {
		return 0, fmt.Errorf("unknown event type: %s", eventType)
	}
	if artworks < event.MinArtworks || artworks > event.MaxArtworks {
		return 0, fmt.Errorf("artwork count %d out of range for %s", artworks, eventType)
	}
	total := row.Base
	for i := 0; i < artworks; i++ {
		if i < len(row.Schedule) {
			total += row.Schedule[i]
		} else {
			total += row.Schedule[len(row.Schedule)-1]
		}
	}
	return total, nil
}
