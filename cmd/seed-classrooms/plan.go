package main

import (
	"fmt"
	"math/rand"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

type dayPlan struct {
	Day   string
	Slots []string
}

type roomPlan struct {
	Room model.Room
	Days []dayPlan
}

// planRooms lays out roomsPerFloor rooms on every floor of every block and
// marks roughly freeRatio of each teaching day's slots free. The same seed
// always yields the same plan. A day left with no free slot gets an empty
// slot list, which clears it.
func planRooms(roomsPerFloor int, seed int64, freeRatio float64) []roomPlan {
	if roomsPerFloor < 1 {
		roomsPerFloor = 1
	}
	if freeRatio < 0 {
		freeRatio = 0
	}
	if freeRatio > 1 {
		freeRatio = 1
	}

	rng := rand.New(rand.NewSource(seed))
	labels := availability.Labels()

	var plans []roomPlan
	for _, block := range availability.Blocks() {
		for _, floor := range availability.FloorsForBlock(block) {
			for n := 1; n <= roomsPerFloor; n++ {
				plan := roomPlan{Room: model.Room{
					Number:   fmt.Sprintf("%s-%d%02d", block, floor, n),
					Location: block,
					Floor:    floor,
				}}
				for _, day := range availability.TeachingDays() {
					free := []string{}
					for _, label := range labels {
						if rng.Float64() < freeRatio {
							free = append(free, label)
						}
					}
					plan.Days = append(plan.Days, dayPlan{Day: day, Slots: free})
				}
				plans = append(plans, plan)
			}
		}
	}
	return plans
}
